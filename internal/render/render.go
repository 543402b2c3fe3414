// Package render turns game snapshots into terminal text. Every function is
// pure: it reads only its arguments and returns a string.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/talgya/medieval-life/internal/agents"
	"github.com/talgya/medieval-life/internal/economy"
	"github.com/talgya/medieval-life/internal/engine"
	"github.com/talgya/medieval-life/internal/persistence"
	"github.com/talgya/medieval-life/internal/social"
	"github.com/talgya/medieval-life/internal/world"
)

var (
	gold   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	bright = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Bold(true)
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	cell   = lipgloss.NewStyle().Padding(0, 1)
	border = lipgloss.NewStyle().Foreground(lipgloss.Color("94"))

	pane = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("94")).
		Padding(0, 1)
)

// Title capitalizes a label such as a skill, trait or category.
func Title(s string) string {
	return cases.Title(language.English).String(s)
}

// Gold formats an amount with thousands separators.
func Gold(n int) string {
	return humanize.Comma(int64(n)) + " gold"
}

func grid(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return cell.Inherit(bright)
			}
			return cell
		}).
		Render()
}

// Status renders the character sheet and where the player stands.
func Status(s engine.State) string {
	p := s.Player
	years, months := agents.YearsMonths(p.Age)
	age := fmt.Sprintf("%d years", years)
	if months > 0 {
		age += fmt.Sprintf(", %d months", months)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s the %s\n", bright.Render(p.Name), p.Occupation)
	fmt.Fprintf(&b, "%s\n\n", dim.Render(s.Date))
	fmt.Fprintf(&b, "Age:        %s\n", age)
	fmt.Fprintf(&b, "Health:     %d/100\n", p.Health)
	fmt.Fprintf(&b, "Wealth:     %s\n", gold.Render(Gold(p.Wealth)))
	fmt.Fprintf(&b, "Reputation: %d/100\n", p.Reputation)
	if len(p.Traits) > 0 {
		traits := make([]string, len(p.Traits))
		for i, t := range p.Traits {
			traits[i] = Title(string(t))
		}
		fmt.Fprintf(&b, "Traits:     %s\n", strings.Join(traits, ", "))
	}
	b.WriteString("\nSkills:\n")
	for _, sk := range agents.SortedSkills(p.Skills) {
		fmt.Fprintf(&b, "  %-12s %d\n", Title(string(sk)), p.Skills[sk])
	}
	fmt.Fprintf(&b, "\n%s (%s, %s)\n%s", bright.Render(s.Location), s.LocationKind, s.Kingdom, s.Description)
	if s.Heir != nil {
		fmt.Fprintf(&b, "\n\nHeir: %s", s.Heir.Name)
	}
	return pane.Render(b.String())
}

// Actions renders the numbered action menu.
func Actions(actions []string) string {
	rows := make([][]string, len(actions))
	for i, a := range actions {
		rows[i] = []string{fmt.Sprint(i + 1), a}
	}
	return grid([]string{"#", "Action"}, rows)
}

// Inventory renders carried items and equipment.
func Inventory(p agents.Player) string {
	if len(p.Inventory) == 0 && len(p.Equipment) == 0 {
		return dim.Render("You carry nothing.")
	}
	rows := make([][]string, len(p.Inventory))
	for i, it := range p.Inventory {
		rows[i] = []string{fmt.Sprint(i + 1), it.Name, Title(string(it.Category)), itemEffect(it), Gold(economy.SellValue(it))}
	}
	out := []string{grid([]string{"#", "Item", "Kind", "Effect", "Sells for"}, rows)}

	var eq []string
	for _, slot := range []agents.Category{agents.CategoryWeapon, agents.CategoryArmor} {
		if it, ok := p.Equipment[slot]; ok {
			eq = append(eq, fmt.Sprintf("%s: %s (%s)", Title(string(slot)), it.Name, itemEffect(it)))
		}
	}
	if len(eq) > 0 {
		out = append(out, "Equipped:\n  "+strings.Join(eq, "\n  "))
	}
	return lipgloss.JoinVertical(lipgloss.Left, out...)
}

func itemEffect(it agents.Item) string {
	switch it.Category {
	case agents.CategoryFood, agents.CategoryPotion:
		return fmt.Sprintf("+%d health", it.HealthValue)
	case agents.CategoryBook:
		return fmt.Sprintf("+%d %s", it.SkillValue, it.Skill)
	case agents.CategoryWeapon:
		return fmt.Sprintf("%d damage", it.Damage)
	case agents.CategoryArmor:
		return fmt.Sprintf("%d protection", it.Protection)
	}
	return ""
}

// Market renders the catalog of a market visit against the player's purse.
func Market(m *economy.Market, wealth int) string {
	if m == nil {
		return dim.Render("No market is open.")
	}
	rows := make([][]string, len(m.Items))
	for i, it := range m.Items {
		rows[i] = []string{fmt.Sprint(i + 1), it.Name, Title(string(it.Category)), itemEffect(it), Gold(it.Value)}
	}
	head := fmt.Sprintf("%s market. Your purse: %s", m.Location, gold.Render(Gold(wealth)))
	return lipgloss.JoinVertical(lipgloss.Left, bright.Render(head), grid([]string{"#", "Item", "Kind", "Effect", "Price"}, rows))
}

// Family renders the spouse and children.
func Family(p agents.Player) string {
	var out []string
	if s := p.Spouse; s != nil {
		years, _ := agents.YearsMonths(s.Age)
		out = append(out, fmt.Sprintf("Spouse: %s, %d years. Relationship %d (%s)",
			bright.Render(s.Name), years, s.Relationship, agents.RelationshipLabel(s.Relationship)))
	} else {
		out = append(out, dim.Render("You are not married."))
	}
	if len(p.Children) > 0 {
		rows := make([][]string, len(p.Children))
		for i, c := range p.Children {
			years, _ := agents.YearsMonths(c.Age)
			rows[i] = []string{fmt.Sprint(i + 1), c.Name, string(c.Gender), fmt.Sprint(years),
				fmt.Sprintf("%d (%s)", c.Relationship, agents.RelationshipLabel(c.Relationship))}
		}
		out = append(out, grid([]string{"#", "Child", "Gender", "Age", "Relationship"}, rows))
	}
	return lipgloss.JoinVertical(lipgloss.Left, out...)
}

// Candidates renders the offers of a spouse search.
func Candidates(cs []agents.SpouseCandidate) string {
	if len(cs) == 0 {
		return dim.Render("No suitors are waiting.")
	}
	rows := make([][]string, len(cs))
	for i, c := range cs {
		traits := make([]string, len(c.Traits))
		for j, t := range c.Traits {
			traits[j] = Title(string(t))
		}
		rows[i] = []string{fmt.Sprint(i + 1), c.Name, fmt.Sprint(c.Age), strings.Join(traits, ", "), Gold(c.Dowry)}
	}
	return grid([]string{"#", "Name", "Age", "Traits", "Dowry"}, rows)
}

// EventLog renders the last n log entries, newest first.
func EventLog(p agents.Player, n int) string {
	return entryLines(agents.RecentEvents(&p, n))
}

// History renders the event log a save captured, oldest first.
func History(rec persistence.SaveRecord, entries []agents.LogEntry) string {
	return bright.Render(fmt.Sprintf("%s, %s Year %d", rec.Player, rec.Season, rec.Year)) + "\n" + entryLines(entries)
}

func entryLines(entries []agents.LogEntry) string {
	if len(entries) == 0 {
		return dim.Render("Nothing has happened yet.")
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = dim.Render("["+e.Timestamp+"]") + " " + e.Text
	}
	return strings.Join(lines, "\n")
}

// Destinations renders where the roads lead.
func Destinations(ds []world.Destination) string {
	if len(ds) == 0 {
		return dim.Render("No roads lead anywhere from here.")
	}
	rows := make([][]string, len(ds))
	for i, d := range ds {
		rows[i] = []string{fmt.Sprint(i + 1), d.Name, d.Kind.String(), d.Kingdom, fmt.Sprintf("%d days", d.Days)}
	}
	return grid([]string{"#", "Destination", "Kind", "Kingdom", "Journey"}, rows)
}

// NPCs renders the residents of a settlement with the player's standing.
func NPCs(npcs []social.NPC, relations map[string]int) string {
	rows := make([][]string, len(npcs))
	for i, n := range npcs {
		score := relations[n.Name]
		rows[i] = []string{fmt.Sprint(i + 1), n.Name, n.Role, fmt.Sprintf("%d (%s)", score, social.StandingLabel(score))}
	}
	return grid([]string{"#", "Name", "Role", "Standing"}, rows)
}

// Options renders a numbered list of conversation options.
func Options(greeting string, opts []social.Option) string {
	var b strings.Builder
	b.WriteString(greeting)
	for i, o := range opts {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, o.Prompt)
	}
	return b.String()
}

// Notice renders a message box.
func Notice(n engine.Notice) string {
	return pane.Render(bright.Render(n.Title) + "\n\n" + n.Body)
}

// Outcome renders the log lines and notices of one command.
func Outcome(out engine.Outcome) string {
	parts := make([]string, 0, len(out.Notices)+1)
	if len(out.Lines) > 0 {
		parts = append(parts, strings.Join(out.Lines, "\n"))
	}
	for _, n := range out.Notices {
		parts = append(parts, Notice(n))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Saves renders the chronicle's save index. Times are relative to now.
func Saves(recs []persistence.SaveRecord, now time.Time) string {
	if len(recs) == 0 {
		return dim.Render("No saves recorded.")
	}
	rows := make([][]string, len(recs))
	for i, r := range recs {
		rows[i] = []string{fmt.Sprint(i + 1), r.Player, fmt.Sprintf("%s, Year %d", r.Season, r.Year), Gold(r.Wealth),
			humanize.RelTime(r.CreatedAt, now, "ago", "from now"), r.Path}
	}
	return grid([]string{"#", "Player", "Date", "Wealth", "Saved", "File"}, rows)
}
