package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"contactpsi/internal/contacts"
	"contactpsi/internal/domain"
	"contactpsi/internal/services/party"
)

// readContacts loads a contacts file and returns the hashes to submit and,
// index for index, the contact each hash came from.
func readContacts(path string) ([]domain.Hash, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}
	hashes, labels := contacts.HashAll(lines)
	if len(hashes) > domain.MaxContacts {
		return nil, nil, fmt.Errorf("%s has %d distinct contacts: %w", path, len(hashes), contacts.ErrOverflow)
	}
	return hashes, labels, nil
}

// printView lists matched contacts by label, or by hash when the labels
// are unknown.
func printView(w io.Writer, view domain.MatchResult, labels []string) {
	fmt.Fprintf(w, "Matches: %d\n", view.MatchCount)
	if len(labels) > 0 {
		for _, c := range party.Project(view, labels) {
			fmt.Fprintf(w, "  %s\n", c)
		}
		return
	}
	for _, i := range view.Matched() {
		fmt.Fprintf(w, "  [%d] %s\n", i, view.Matches[i])
	}
}
