package commands

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Nicolas-Barriere/pactole-sub001/src/config"
	"github.com/Nicolas-Barriere/pactole-sub001/src/database"
	"github.com/Nicolas-Barriere/pactole-sub001/src/matching"
	"github.com/Nicolas-Barriere/pactole-sub001/src/models"
)

func newRulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage keyword tagging rules",
	}
	cmd.AddCommand(newRulesListCommand())
	cmd.AddCommand(newRulesAddCommand())
	cmd.AddCommand(newRulesMatchCommand())
	return cmd
}

func newRulesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List keyword rules in evaluation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database.InitDB(config.Cfg.DatabasePath)
			rules, err := database.NewStore(database.DB).ListKeywordRules()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPRIORITY\tKEYWORD\tTARGET")
			for _, r := range rules {
				fmt.Fprintf(w, "%d\t%d\t%s\t%d\n", r.ID, r.Priority, r.Keyword, r.TargetID)
			}
			return w.Flush()
		},
	}
}

func newRulesAddCommand() *cobra.Command {
	var keyword string
	var target int64
	var priority int
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a keyword rule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if keyword == "" {
				return errors.New("--keyword is required")
			}
			if target == 0 {
				return errors.New("--target is required")
			}
			database.InitDB(config.Cfg.DatabasePath)
			id, err := database.NewStore(database.DB).AddKeywordRule(models.KeywordRule{
				Keyword:  keyword,
				TargetID: target,
				Priority: priority,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rule %d created\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&keyword, "keyword", "", "substring to match against labels")
	cmd.Flags().Int64Var(&target, "target", 0, "tag or category id the rule assigns")
	cmd.Flags().IntVar(&priority, "priority", 0, "higher priorities are evaluated first")
	return cmd
}

func newRulesMatchCommand() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "match <label>",
		Short: "Resolve a label against the stored rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			database.InitDB(config.Cfg.DatabasePath)
			svc := matching.NewService(database.NewStore(database.DB), config.Cfg.RuleCacheTTL)
			if all {
				targets, err := svc.MatchAll(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), targets)
				return nil
			}
			target, ok, err := svc.MatchOne(args[0])
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "no match")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), target)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "collect every matching target instead of the first")
	return cmd
}
