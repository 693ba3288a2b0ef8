package interactive

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/wrappedfriendtech/ftdeploy/internal/domain/config"
	"github.com/wrappedfriendtech/ftdeploy/internal/domain/models"
	"github.com/wrappedfriendtech/ftdeploy/internal/usecase"
)

// SelectorAdapter picks a contract with a fuzzy-searchable prompt on stderr
type SelectorAdapter struct {
	config *config.RuntimeConfig
	out    io.WriteCloser
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{
		config: cfg,
		out:    stderrCloser{os.Stderr},
	}
}

// SelectContract asks the user to pick one of the candidates. A single
// candidate is returned without prompting.
func (s *SelectorAdapter) SelectContract(ctx context.Context, contracts []*models.Contract, prompt string) (*models.Contract, error) {
	if s.config.NonInteractive {
		return nil, fmt.Errorf("cannot select a contract in non-interactive mode, pass it as path:Name")
	}
	switch len(contracts) {
	case 0:
		return nil, fmt.Errorf("no contracts to select from")
	case 1:
		return contracts[0], nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	candidates := sortedCandidates(contracts)
	prompter := promptui.Select{
		Label: prompt,
		Items: contractLabels(candidates),
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}",
			Active:   "▸ {{ . | cyan }}",
			Inactive: "  {{ . | faint }}",
			Selected: "✓ {{ . | green }}",
			Help:     color.New(color.FgYellow).Sprint("Type to filter, arrows to move, Enter to deploy"),
		},
		Size:              10,
		StartInSearchMode: true,
		Searcher:          contractSearcher(candidates),
		// stdout carries only the deployed line
		Stdout: s.out,
	}

	index, _, err := prompter.Run()
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}
	return candidates[index], nil
}

// sortedCandidates orders contracts by name, then source path
func sortedCandidates(contracts []*models.Contract) []*models.Contract {
	sorted := make([]*models.Contract, len(contracts))
	copy(sorted, contracts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].Path < sorted[j].Path
	})
	return sorted
}

// contractLabels renders "Name (File.sol) [notes]" for each contract
func contractLabels(contracts []*models.Contract) []string {
	labels := make([]string, len(contracts))
	for i, contract := range contracts {
		source := strings.TrimPrefix(strings.TrimPrefix(contract.Path, "src/"), "contracts/")
		label := fmt.Sprintf("%s (%s)",
			color.New(color.FgWhite, color.Bold).Sprint(contract.Name),
			color.New(color.FgBlue).Sprint(source))

		if notes := contractNotes(contract); len(notes) > 0 {
			label += " " + color.New(color.FgYellow).Sprintf("[%s]", strings.Join(notes, ", "))
		}
		labels[i] = label
	}
	return labels
}

func contractNotes(contract *models.Contract) []string {
	switch {
	case contract.Artifact == nil:
		return nil
	case contract.Artifact.NeedsLinking():
		return []string{"needs linking"}
	case !contract.IsDeployable():
		return []string{"abstract"}
	}

	parsed, err := contract.Artifact.ParsedABI()
	if err != nil {
		return nil
	}
	switch n := len(parsed.Constructor.Inputs); n {
	case 0:
		return nil
	case 1:
		return []string{"1 arg"}
	default:
		return []string{fmt.Sprintf("%d args", n)}
	}
}

// contractSearcher matches the query against the contract name and its
// source path, by substring first and fuzzily otherwise
func contractSearcher(contracts []*models.Contract) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}
		query := strings.ToLower(input)
		fields := []string{
			strings.ToLower(contracts[index].Name),
			strings.ToLower(contracts[index].Path),
		}
		for _, field := range fields {
			if strings.Contains(field, query) {
				return true
			}
		}
		return len(fuzzy.Find(query, fields)) > 0
	}
}

// stderrCloser keeps promptui from closing the process's stderr
type stderrCloser struct {
	io.Writer
}

func (stderrCloser) Close() error { return nil }

// Ensure the adapter implements the interface
var _ usecase.ContractSelector = (*SelectorAdapter)(nil)
