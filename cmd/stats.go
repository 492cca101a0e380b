package cmd

import (
	"fmt"
	"time"

	"github.com/abhisek/texdrill/internal/profile"
	"github.com/abhisek/texdrill/internal/quiz"
	"github.com/abhisek/texdrill/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progress statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		p, err := profile.Load(cmd.Context(), st.SnapshotRepo())
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}

		catalog, err := quiz.Builtin()
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		now := time.Now()
		p.Economy.CheckRegen(now)

		fmt.Printf("XP:      %d\n", p.Ledger.XP)
		fmt.Printf("Streak:  %d day(s)\n", p.Ledger.Streak)
		fmt.Printf("Hearts:  %d/%d\n", p.Economy.Hearts(), p.Economy.Max())
		fmt.Printf("Lessons: %d completed\n\n", len(p.Ledger.Completed))

		for _, unit := range catalog.Units {
			unlocked := p.Ledger.UnitUnlocked(catalog, unit.ID)
			marker := " "
			if !unlocked {
				marker = "🔒"
			}
			fmt.Printf("%s %s\n", marker, unit.Title)
			for i := range unit.Lessons {
				l := &unit.Lessons[i]
				if score, ok := p.Ledger.BestScore(l.ID); ok {
					star := " "
					if p.Ledger.LessonMastered(l) {
						star = "★"
					}
					fmt.Printf("   %s %-40s %3.0f%%\n", star, l.Title, score*100)
				} else {
					fmt.Printf("     %-40s   —\n", l.Title)
				}
			}
		}
		return nil
	},
}
