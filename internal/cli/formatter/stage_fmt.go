package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dkoval/hirepath/internal/domain"
)

// FormatApplicationList renders a styled application list inside a bordered box.
func FormatApplicationList(apps []*domain.Application) string {
	headers := []string{"ID", "CANDIDATE", "JOB", "CREATED"}
	rows := make([][]string, 0, len(apps))

	for _, a := range apps {
		rows = append(rows, []string{
			TruncID(a.ID),
			StyleFg.Render(a.CandidateID),
			Bold(a.JobTitle),
			Dim(HumanTimestamp(a.CreatedAt)),
		})
	}

	return RenderBox("Applications", RenderTable(headers, rows))
}

// FormatStageList renders the timeline of an application as a table, one row
// per stage in chain order.
func FormatStageList(stages []*domain.ApplicationStage) string {
	headers := []string{"#", "ID", "TYPE", "TITLE", "STATUS", "UPDATED"}
	rows := make([][]string, 0, len(stages))

	for _, s := range stages {
		title := s.DisplayTitle()
		if !s.VisibleToCandidate {
			title += " " + Dim("(hidden)")
		}
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%d", s.Order)),
			TruncID(s.ID),
			TypeBadge(s.Type),
			StyleFg.Render(title),
			StatusPill(s.Status),
			Dim(HumanTimestamp(s.UpdatedAt)),
		})
	}

	return RenderBox("Timeline", RenderTable(headers, rows))
}

// FormatStageDetail renders a single stage card, including its payload.
func FormatStageDetail(s *domain.ApplicationStage) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(s.DisplayTitle()) + "\n")
	b.WriteString(TypeBadge(s.Type) + "\n\n")

	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("STATUS "), StatusPill(s.Status)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ID     "), TruncID(s.ID)))
	b.WriteString(fmt.Sprintf("%s  %d\n", StyleDim.Render("ORDER  "), s.Order))
	visible := "yes"
	if !s.VisibleToCandidate {
		visible = "no"
	}
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("VISIBLE"), StyleFg.Render(visible)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("CREATED"), StyleFg.Render(HumanDate(s.CreatedAt))))
	if s.CompletedAt != nil {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("DONE   "), StyleFg.Render(HumanDate(*s.CompletedAt))))
	}

	if payload, err := domain.MarshalStageData(s.Data); err == nil {
		b.WriteString("\n" + Header("Payload") + "\n")
		b.WriteString(Dim(string(payload)) + "\n")
	}

	return RenderBox("", b.String())
}

// StageStatsData holds the aggregate counts rendered by FormatStageStats.
type StageStatsData struct {
	Total     int
	Completed int
	ByStatus  map[domain.StageStatus]int
	ByType    map[domain.StageType]int
}

// FormatStageStats renders aggregate pipeline counts.
func FormatStageStats(stats StageStatsData) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("STAGES   "), Bold(fmt.Sprintf("%d", stats.Total))))
	b.WriteString(fmt.Sprintf("%s  %s\n\n", StyleDim.Render("COMPLETED"), Bold(fmt.Sprintf("%d", stats.Completed))))

	b.WriteString(Header("By status") + "\n")
	for _, status := range sortedStatusKeys(stats.ByStatus) {
		b.WriteString(fmt.Sprintf("%-4d %s\n", stats.ByStatus[status], StatusPill(status)))
	}

	b.WriteString("\n" + Header("By type") + "\n")
	for _, t := range sortedTypeKeys(stats.ByType) {
		b.WriteString(fmt.Sprintf("%-4d %s\n", stats.ByType[t], TypeBadge(t)))
	}

	return RenderBox("Pipeline", b.String())
}

func sortedStatusKeys(m map[domain.StageStatus]int) []domain.StageStatus {
	keys := make([]domain.StageStatus, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func sortedTypeKeys(m map[domain.StageType]int) []domain.StageType {
	keys := make([]domain.StageType, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
