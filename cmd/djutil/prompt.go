package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// confirmExclusiveAccess makes the operator attest that no other application
// has the catalog open for writes before mutation begins. Off a terminal the
// attestation must come from --yes.
func confirmExclusiveAccess(cmd *cobra.Command, assumeYes bool) error {
	if assumeYes {
		return nil
	}
	if !stdinIsTerminal() {
		return errors.New("apply mode requires --yes when not running interactively")
	}

	fmt.Fprint(cmd.OutOrStdout(), "Apply mode will modify the catalog database.\nConfirm it is not open for writes in any other application [y/N]: ")
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return errors.New("aborted: no confirmation received")
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return nil
	default:
		return errors.New("aborted by operator")
	}
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
