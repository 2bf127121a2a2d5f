// Command httpencode writes the HTTP/1.x wire form of JSON message
// descriptions.
//
// Usage:
//
//	httpencode [-config file.yaml] [-in messages.json] [-encoding gzip] [-max n] [-metrics] [-v]
//
// Each JSON object read from the input is one message:
//
//	{"kind":"request","method":"GET","uri":"/","headers":[{"name":"Host","value":"example.com"}]}
//	{"kind":"response","status":200,"body":"hello"}
package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/swlynch99/httpencode/internal/cli"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("httpencode: ")

	if err := cli.Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}
