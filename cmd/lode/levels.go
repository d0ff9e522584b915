package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lode/internal/games/lode/levels"
	"github.com/vovakirdan/tui-lode/internal/games/lode/sim"
)

var flagExportOut string

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Inspect and export level packs",
	Long: `Inspect the level pack selected by --levels or the config
(the built-in pack when neither names one).

Examples:
  lode levels list
  lode levels show 1
  lode levels --levels ./LEVELS.DAT export --out levels.yaml`,
}

var levelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the levels of the pack",
	Args:  cobra.NoArgs,
	RunE:  runLevelsList,
}

var levelsShowCmd = &cobra.Command{
	Use:   "show <level>",
	Short: "Draw a level (numbered from 1)",
	Args:  cobra.ExactArgs(1),
	RunE:  runLevelsShow,
}

var levelsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the pack as a YAML text pack",
	Args:  cobra.NoArgs,
	RunE:  runLevelsExport,
}

func init() {
	levelsExportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "Output file (default: stdout)")
	levelsCmd.AddCommand(levelsListCmd)
	levelsCmd.AddCommand(levelsShowCmd)
	levelsCmd.AddCommand(levelsExportCmd)
}

func openPack() (*levels.Pack, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return loadPack(cfg)
}

func runLevelsList(_ *cobra.Command, _ []string) error {
	pack, err := openPack()
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d levels, %d per game\n\n", pack.Name(), pack.Count(), pack.GameLevels())
	fmt.Printf("  %-5s  %-24s  %6s  %9s\n", "Level", "Title", "Chests", "Pursuers")
	fmt.Printf("  %-5s  %-24s  %6s  %9s\n", "-----", "-----", "------", "--------")
	for i := 0; i < pack.Count(); i++ {
		codes, err := pack.Codes(i)
		if err != nil {
			return err
		}
		layout := sim.BuildLayout(i, codes)
		title := pack.Title(i)
		if title == "" {
			title = "-"
		}
		fmt.Printf("  %-5d  %-24s  %6d  %9d\n", i+1, title, layout.Chests, len(layout.Pursuers))
	}
	return nil
}

// glyphStyles colours the text glyphs of a level preview.
var glyphStyles = map[rune]lipgloss.Style{
	'#': lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	'@': lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	'H': lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	'-': lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	'X': lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
	'S': lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	'$': lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	'0': lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	'&': lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
}

func runLevelsShow(_ *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return fmt.Errorf("level must be a number from 1, got %q", args[0])
	}
	pack, err := openPack()
	if err != nil {
		return err
	}
	if n > pack.Count() {
		return fmt.Errorf("pack %s has %d levels", pack.Name(), pack.Count())
	}
	codes, err := pack.Codes(n - 1)
	if err != nil {
		return err
	}

	var b strings.Builder
	for _, row := range levels.Render(codes) {
		for _, r := range row {
			cell := string([]rune{r, r})
			if st, ok := glyphStyles[r]; ok {
				cell = st.Render(cell)
			}
			b.WriteString(cell)
		}
		b.WriteString("\n")
	}

	title := fmt.Sprintf("Level %d", n)
	if t := pack.Title(n - 1); t != "" {
		title += ": " + t
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("4"))
	fmt.Println(lipgloss.NewStyle().Bold(true).Render(title))
	fmt.Println(box.Render(strings.TrimSuffix(b.String(), "\n")))
	return nil
}

func runLevelsExport(_ *cobra.Command, _ []string) error {
	pack, err := openPack()
	if err != nil {
		return err
	}
	tp, err := levels.Export(pack)
	if err != nil {
		return err
	}
	data, err := tp.Marshal()
	if err != nil {
		return err
	}
	if flagExportOut == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(flagExportOut, data, 0o644); err != nil {
		return fmt.Errorf("cannot write %s: %w", flagExportOut, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %d levels to %s\n", len(tp.Levels), flagExportOut)
	return nil
}
