// Command switchboard lists a provider's models and runs chats from the
// command line.
//
// Usage:
//
//	switchboard --provider openrouter models
//	switchboard model anthropic/claude-sonnet-4
//	switchboard chat gpt-4o "Explain singleflight in one paragraph"
package main

import (
	"errors"
	"fmt"
	"os"

	sb "github.com/spetersoncode/switchboard"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errModelNotFound) {
			if cat := sb.CategoryOf(err); cat != "" {
				fmt.Fprintf(os.Stderr, "error (%s): %v\n", cat, err)
			} else {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
			}
		}
		os.Exit(1)
	}
}
