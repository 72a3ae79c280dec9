// Command fnv164 prints the digest remapd derives for a request, to
// verify routing against other implementations of the hash contract:
//
//	$ fnv164 -s www.example
//	0x24d4dc434ba8a1da
//
//	$ fnv164 www.example /hello/world
//	0x5f6b39c385b731c2
//
// With two arguments, host and path are hashed as one concatenation,
// exactly like the proxy does per request.
package main

import (
	"flag"
	"fmt"
	"os"

	"remapd/internal/fnv64"
)

func main() {
	s := flag.String("s", "", "hash a literal string")
	flag.Parse()

	switch {
	case *s != "":
		fmt.Printf("0x%x\n", fnv64.SumString(*s))
	case flag.NArg() == 2:
		fmt.Printf("0x%x\n", fnv64.ContinueString(fnv64.SumString(flag.Arg(0)), flag.Arg(1)))
	default:
		fmt.Fprintln(os.Stderr, "usage: fnv164 -s <string> | fnv164 <host> <path>")
		os.Exit(2)
	}
}
