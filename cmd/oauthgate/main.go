// Command oauthgate serves the OAuth callback for a static site.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Environ).Execute(); err != nil {
		os.Exit(1)
	}
}
