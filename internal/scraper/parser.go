package scraper

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dom/fantasy-draft-assistant/internal/domain"
)

var draftMetaRe = regexp.MustCompile(`(\d+)(?:st|nd|rd|th) round \((\d+)(?:st|nd|rd|th) overall\) of the (\d{4})`)

// parsePlayerPage extracts the bio block from a player page. The PFR ID is
// stamped on by the caller; it comes from the URL, not the page.
func parsePlayerPage(doc *goquery.Document) (*domain.Player, error) {
	player := &domain.Player{}

	player.Name = strings.TrimSpace(doc.Find("h1 span").First().Text())
	if player.Name == "" {
		return nil, fmt.Errorf("player page has no name header")
	}

	doc.Find("#meta p").Each(func(_ int, p *goquery.Selection) {
		text := strings.TrimSpace(p.Text())
		switch {
		case strings.HasPrefix(text, "Position:"):
			player.Position = parsePositionMeta(text)
		case strings.HasPrefix(text, "College:"):
			player.College = strings.TrimSpace(strings.Split(strings.TrimPrefix(text, "College:"), "(")[0])
		case strings.HasPrefix(text, "Draft:"):
			if m := draftMetaRe.FindStringSubmatch(text); m != nil {
				round, _ := strconv.Atoi(m[1])
				pick, _ := strconv.Atoi(m[2])
				year, _ := strconv.Atoi(m[3])
				player.DraftedRound = &round
				player.DraftedPick = &pick
				player.DraftedYear = &year
			}
		}

		p.Find("span[itemprop=height]").Each(func(_ int, s *goquery.Selection) {
			player.Height = strings.TrimSpace(s.Text())
		})
		p.Find("span[itemprop=weight]").Each(func(_ int, s *goquery.Selection) {
			raw := strings.TrimSuffix(strings.TrimSpace(s.Text()), "lb")
			if w, err := strconv.Atoi(raw); err == nil {
				player.Weight = &w
			}
		})
		p.Find("span[itemprop=birthDate]").Each(func(_ int, s *goquery.Selection) {
			if v, ok := s.Attr("data-birth"); ok {
				player.BirthDate = v
			}
		})
	})

	return player, nil
}

// parsePositionMeta pulls the first recognizable position out of the
// "Position: RB" meta line. Multi-position players keep the primary listing.
func parsePositionMeta(text string) domain.Position {
	text = strings.TrimPrefix(text, "Position:")
	for _, token := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '-' || r == '/' || r == ' ' || r == ' '
	}) {
		if pos, err := domain.ParsePosition(token); err == nil {
			return pos
		}
	}
	return ""
}

// parseStatTables reads the passing table and the combined rushing and
// receiving table. Rows without a team (career totals, missed seasons) are
// skipped.
func parseStatTables(doc *goquery.Document) ([]domain.PassingStats, []domain.RushingStats, []domain.ReceivingStats, error) {
	var passing []domain.PassingStats
	var rushing []domain.RushingStats
	var receiving []domain.ReceivingStats

	doc.Find("table#passing tbody tr").Each(func(_ int, row *goquery.Selection) {
		season, team, ok := rowKey(row)
		if !ok {
			return
		}
		passing = append(passing, domain.PassingStats{
			Season:             season,
			Team:               &domain.Team{Abbreviation: team},
			Games:              cellInt(row, "g"),
			GamesStarted:       cellInt(row, "gs"),
			Completions:        cellInt(row, "pass_cmp"),
			Attempts:           cellInt(row, "pass_att"),
			CompletionPct:      cellFloat(row, "pass_cmp_perc"),
			PassingYards:       cellInt(row, "pass_yds"),
			PassingTDs:         cellInt(row, "pass_td"),
			Interceptions:      cellInt(row, "pass_int"),
			YardsPerAttempt:    cellFloat(row, "pass_yds_per_att"),
			YardsPerCompletion: cellFloat(row, "pass_yds_per_cmp"),
			QuarterbackRating:  cellFloat(row, "pass_rating"),
			Sacks:              cellInt(row, "pass_sacked"),
			SackYards:          cellInt(row, "pass_sacked_yds"),
		})
	})

	combined := doc.Find("table#rushing_and_receiving tbody tr")
	if combined.Length() == 0 {
		combined = doc.Find("table#receiving_and_rushing tbody tr")
	}
	combined.Each(func(_ int, row *goquery.Selection) {
		season, team, ok := rowKey(row)
		if !ok {
			return
		}
		rushing = append(rushing, domain.RushingStats{
			Season:          season,
			Team:            &domain.Team{Abbreviation: team},
			Games:           cellInt(row, "g"),
			GamesStarted:    cellInt(row, "gs"),
			RushingAttempts: cellInt(row, "rush_att"),
			RushingYards:    cellInt(row, "rush_yds"),
			YardsPerAttempt: cellFloat(row, "rush_yds_per_att"),
			RushingTDs:      cellInt(row, "rush_td"),
			LongestRush:     cellInt(row, "rush_long"),
			Fumbles:         cellInt(row, "fumbles"),
			FumblesLost:     cellInt(row, "fumbles_lost"),
		})
		receiving = append(receiving, domain.ReceivingStats{
			Season:            season,
			Team:              &domain.Team{Abbreviation: team},
			Games:             cellInt(row, "g"),
			GamesStarted:      cellInt(row, "gs"),
			Targets:           cellInt(row, "targets"),
			Receptions:        cellInt(row, "rec"),
			ReceivingYards:    cellInt(row, "rec_yds"),
			YardsPerReception: cellFloat(row, "rec_yds_per_rec"),
			ReceivingTDs:      cellInt(row, "rec_td"),
			LongestReception:  cellInt(row, "rec_long"),
			CatchPct:          cellFloat(row, "catch_pct"),
			YardsPerTarget:    cellFloat(row, "rec_yds_per_tgt"),
			Fumbles:           cellInt(row, "fumbles"),
			FumblesLost:       cellInt(row, "fumbles_lost"),
		})
	})

	return passing, rushing, receiving, nil
}

// rowKey reads the season and team cells that key every stat row. Multi-team
// season summary rows use pseudo-abbreviations like 2TM and are skipped.
func rowKey(row *goquery.Selection) (int, string, bool) {
	seasonText := cellText(row, "year_id")
	// Trailing markers like "2024*" (pro bowl) appear in the season cell.
	seasonText = strings.TrimRight(seasonText, "*+")
	season, err := strconv.Atoi(seasonText)
	if err != nil {
		return 0, "", false
	}

	team := cellText(row, "team")
	if team == "" || strings.HasSuffix(team, "TM") {
		return 0, "", false
	}
	return season, team, true
}

func cellText(row *goquery.Selection, stat string) string {
	cell := row.Find(fmt.Sprintf("[data-stat=%q]", stat)).First()
	return strings.TrimSpace(cell.Text())
}

func cellInt(row *goquery.Selection, stat string) *int {
	text := cellText(row, stat)
	if text == "" || text == "--" {
		return nil
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return nil
	}
	return &v
}

func cellFloat(row *goquery.Selection, stat string) *float64 {
	text := cellText(row, stat)
	text = strings.TrimSuffix(text, "%")
	if text == "" || text == "--" {
		return nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil
	}
	return &v
}
