package cli

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pstuifzand/sortable-tree/internal/dnd"
	"github.com/pstuifzand/sortable-tree/internal/printer"
	"github.com/pstuifzand/sortable-tree/internal/tree"
)

// dragFlags are the inputs of a simulated drag
type dragFlags struct {
	active      string
	over        string
	offset      float64
	indentation int
}

func (f *dragFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.active, "active", "", "id of the dragged item (required)")
	cmd.Flags().StringVar(&f.over, "over", "", "id of the hovered item (default: the dragged item)")
	cmd.Flags().Float64Var(&f.offset, "offset", 0, "horizontal pointer offset since the drag started")
	cmd.Flags().IntVar(&f.indentation, "indentation", dnd.DefaultIndentationWidth, "offset that makes one nesting level")
	_ = cmd.MarkFlagRequired("active")
}

func (f *dragFlags) overID() string {
	if f.over == "" {
		return f.active
	}
	return f.over
}

func newFlattenCmd(opts *globalOptions) *cobra.Command {
	var (
		visible bool
		active  string
	)

	cmd := &cobra.Command{
		Use:   "flatten [file]",
		Short: "Print the forest as a flat list with parent, depth and index",
		Long: `Print the forest as a flat list in depth-first order.

With --visible the children of collapsed items are left out, as are the
children of the item named by --active.`,
		Example: `  sortable-tree flatten
  sortable-tree flatten menu.yaml --visible -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, _, err := opts.loadItems(args)
			if err != nil {
				return err
			}
			p, err := opts.printer(cmd)
			if err != nil {
				return err
			}

			if visible || active != "" {
				return p.Flat(tree.VisibleItems(items, active))
			}
			return p.Flat(tree.Flatten(items))
		},
	}

	cmd.Flags().BoolVar(&visible, "visible", false, "leave out children of collapsed items")
	cmd.Flags().StringVar(&active, "active", "", "also leave out the children of this item")
	return cmd
}

func newProjectCmd(opts *globalOptions) *cobra.Command {
	drag := &dragFlags{}

	cmd := &cobra.Command{
		Use:   "project [file]",
		Short: "Show where a dragged item would land",
		Example: `  sortable-tree project --active Spring --over Home --offset 60
  sortable-tree project menu.json --active "About Us" --over Winter --offset 4 --indentation 4 -o yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, _, err := opts.loadItems(args)
			if err != nil {
				return err
			}
			treeOpts, err := opts.treeOptions(cmd, drag.indentation)
			if err != nil {
				return err
			}

			visible := tree.VisibleItems(items, drag.active)
			over := drag.overID()
			projection, err := tree.Project(visible, drag.active, over, drag.offset, treeOpts.IndentationWidth)
			if err != nil {
				return withSuggestions(err, tree.IDs(visible))
			}
			opts.logger.WithFields(logrus.Fields{
				"active": drag.active,
				"over":   over,
				"depth":  projection.Depth,
			}).Debug("projected")

			p, err := opts.printer(cmd)
			if err != nil {
				return err
			}
			return p.Projection(printer.ProjectionResult{
				ActiveID:     drag.active,
				OverID:       over,
				Offset:       drag.offset,
				Projection:   projection,
				Announcement: dnd.MovementAnnouncement(items, drag.active, over, projection, dnd.EventOver),
			})
		},
	}

	drag.register(cmd)
	return cmd
}

func newDropCmd(opts *globalOptions) *cobra.Command {
	var announce bool
	drag := &dragFlags{}

	cmd := &cobra.Command{
		Use:   "drop [file]",
		Short: "Drag an item and print the resulting forest",
		Long: `Drag an item and print the resulting forest.

The drag runs through the same session as the terminal UI: the item is
picked up, moved over the hovered item with the given offset and dropped.
The item keeps its subtree.`,
		Example: `  sortable-tree drop --active Spring --over Home --offset 60
  sortable-tree drop menu.yaml --active Collections --over "My Account" -o yaml --announce`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, _, err := opts.loadItems(args)
			if err != nil {
				return err
			}
			treeOpts, err := opts.treeOptions(cmd, drag.indentation)
			if err != nil {
				return err
			}

			var options []dnd.Option
			options = append(options, dnd.WithLogger(opts.logger.WithField("component", "dnd")))
			if announce {
				options = append(options, dnd.WithAnnouncer(dnd.AnnouncerFunc(func(msg string) {
					fmt.Fprintln(cmd.ErrOrStderr(), msg)
				})))
			}
			ctrl, err := dnd.NewController(items, treeOpts, options...)
			if err != nil {
				return err
			}

			if err := ctrl.Start(drag.active); err != nil {
				return withSuggestions(err, tree.IDs(ctrl.Visible()))
			}
			if err := ctrl.Over(drag.overID()); err != nil {
				ctrl.Cancel()
				return withSuggestions(err, tree.IDs(ctrl.Visible()))
			}
			if err := ctrl.Move(drag.offset); err != nil {
				return err
			}
			if _, err := ctrl.End(); err != nil {
				return err
			}

			p, err := opts.printer(cmd)
			if err != nil {
				return err
			}
			return p.Forest(ctrl.Items())
		},
	}

	drag.register(cmd)
	cmd.Flags().BoolVar(&announce, "announce", false, "write drag announcements to stderr")
	return cmd
}

func newRemoveCmd(opts *globalOptions) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:     "remove [file]",
		Aliases: []string{"rm"},
		Short:   "Remove an item with its subtree and print the forest",
		Example: `  sortable-tree remove --id Collections`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, _, err := opts.loadItems(args)
			if err != nil {
				return err
			}

			if tree.FindItem(items, id) == nil {
				opts.logger.WithFields(logrus.Fields{
					"id":          id,
					"suggestions": strings.Join(suggest(id, tree.IDs(tree.Flatten(items))), ", "),
				}).Warn("item not found, nothing removed")
			} else {
				opts.logger.WithFields(logrus.Fields{
					"id":          id,
					"descendants": tree.ChildCount(items, id),
				}).Info("removing item")
			}

			p, err := opts.printer(cmd)
			if err != nil {
				return err
			}
			return p.Forest(tree.RemoveItem(items, id))
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "id of the item to remove (required)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newToggleCmd(opts *globalOptions) *cobra.Command {
	var (
		id       string
		property string
		value    string
	)

	cmd := &cobra.Command{
		Use:   "toggle [file]",
		Short: "Flip or set a boolean property of an item and print the forest",
		Example: `  sortable-tree toggle --id "My Account"
  sortable-tree toggle --id Collections --value true -o yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prop, ok := tree.ParseProperty(property)
			if !ok {
				return fmt.Errorf("unknown property: %s", property)
			}
			setter, err := propertySetter(value)
			if err != nil {
				return err
			}

			items, _, err := opts.loadItems(args)
			if err != nil {
				return err
			}
			if tree.FindItem(items, id) == nil {
				return withSuggestions(tree.NotFoundError{Kind: "item", ID: id}, tree.IDs(tree.Flatten(items)))
			}

			p, err := opts.printer(cmd)
			if err != nil {
				return err
			}
			return p.Forest(tree.SetProperty(items, id, prop, setter))
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "id of the item to change (required)")
	cmd.Flags().StringVar(&property, "property", tree.PropertyCollapsed.String(), "property to change")
	cmd.Flags().StringVar(&value, "value", "toggle", "new value: true, false or toggle")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

// propertySetter maps a --value flag to the function that computes the new
// property value from the old one
func propertySetter(value string) (func(bool) bool, error) {
	if value == "toggle" {
		return func(v bool) bool { return !v }, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil, fmt.Errorf("invalid value %q: want true, false or toggle", value)
	}
	return func(bool) bool { return b }, nil
}

func newCountCmd(opts *globalOptions) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "count [file]",
		Short: "Count the items of the forest, or the descendants of one item",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, _, err := opts.loadItems(args)
			if err != nil {
				return err
			}
			p, err := opts.printer(cmd)
			if err != nil {
				return err
			}

			if id == "" {
				return p.Count("items", tree.Count(items))
			}
			if tree.FindItem(items, id) == nil {
				return withSuggestions(tree.NotFoundError{Kind: "item", ID: id}, tree.IDs(tree.Flatten(items)))
			}
			return p.Count("descendants", tree.ChildCount(items, id))
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "count the descendants of this item")
	return cmd
}

func newShowCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show [file]",
		Short: "Print the forest",
		Example: `  sortable-tree show
  sortable-tree show notes.md -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, _, err := opts.loadItems(args)
			if err != nil {
				return err
			}
			p, err := opts.printer(cmd)
			if err != nil {
				return err
			}
			return p.Forest(items)
		},
	}
}

// withSuggestions adds the closest ids to a NotFoundError
func withSuggestions(err error, ids []string) error {
	var nf tree.NotFoundError
	if !errors.As(err, &nf) {
		return err
	}
	matches := suggest(nf.ID, ids)
	if len(matches) == 0 {
		return err
	}
	return fmt.Errorf("%w (did you mean %s?)", err, strings.Join(quoteAll(matches), " or "))
}

// suggest returns up to three ids that fuzzy-match query, best first
func suggest(query string, ids []string) []string {
	if query == "" {
		return nil
	}
	ranks := fuzzy.RankFindFold(query, ids)
	if len(ranks) == 0 {
		// the query may be the longer one, e.g. a misspelt full id
		for _, id := range ids {
			if fuzzy.MatchFold(id, query) {
				ranks = append(ranks, fuzzy.Rank{Source: id, Target: id, Distance: len(query) - len(id)})
			}
		}
	}
	sort.Stable(ranks)

	var result []string
	for _, r := range ranks {
		result = append(result, r.Target)
		if len(result) == 3 {
			break
		}
	}
	return result
}

func quoteAll(ids []string) []string {
	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = strconv.Quote(id)
	}
	return quoted
}
