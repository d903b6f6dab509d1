package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seglabco/segtok/pkg/language"
	"github.com/seglabco/segtok/pkg/rules"
)

func newLanguagesCommand() *cobra.Command {
	var withClasses bool

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List available language tags",
		Long: `List the language tags the active resource pack provides, one per
line. With --classes, each tag is followed by its token class
inventory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := openRegistry(cmd)
			if err != nil {
				return err
			}
			for _, tag := range registry.Tags() {
				marker := ""
				if tag == language.DefaultTag {
					marker = " (default)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", tag, marker)

				if !withClasses {
					continue
				}
				res, ok := registry.Get(tag)
				if !ok {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", strings.Join(classInventory(res), " "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withClasses, "classes", false, "show each language's token classes")

	return cmd
}

// classInventory collects the class names a resource can assign, root
// first, the rest sorted.
func classInventory(res *language.Resource) []string {
	seen := map[string]struct{}{res.RootClass: {}}
	var classes []string
	for _, d := range []*rules.Description{res.Punct, res.Clitics, res.Abbrev, res.TokenClasses} {
		if d == nil {
			continue
		}
		for _, class := range d.Classes() {
			if _, ok := seen[class]; !ok {
				seen[class] = struct{}{}
				classes = append(classes, class)
			}
		}
		for _, class := range d.MemberClasses() {
			if _, ok := seen[class]; !ok {
				seen[class] = struct{}{}
				classes = append(classes, class)
			}
		}
	}
	sort.Strings(classes)
	return append([]string{res.RootClass}, classes...)
}
