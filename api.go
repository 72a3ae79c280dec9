package main

// APIRuleResponse acknowledges a rule submitted through the rules API.
type APIRuleResponse struct {
	Rule string `json:"rule"` // The rule's ID.
	Host string `json:"host"` // The hostname the rule now answers for.
}

type APIError struct {
	Message string `json:"message"`
}
