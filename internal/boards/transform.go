package boards

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// StoryState is the dashboard's normalized workflow state.
type StoryState string

const (
	StatePlanned    StoryState = "Planned"
	StateInProgress StoryState = "In Progress"
	StateInReview   StoryState = "In Review"
	StateCompleted  StoryState = "Completed"
	StateBlocked    StoryState = "Blocked"
)

// Priority is the dashboard's normalized priority scale.
type Priority string

const (
	PriorityCritical Priority = "Critical"
	PriorityHigh     Priority = "High"
	PriorityMedium   Priority = "Medium"
	PriorityLow      Priority = "Low"
	PriorityUnset    Priority = "Unset"
)

// stateMap normalizes the many upstream workflow states onto the five the
// dashboard displays. Unknown states fall back to Planned.
var stateMap = map[string]StoryState{
	"New":         StatePlanned,
	"To Do":       StatePlanned,
	"Active":      StateInProgress,
	"In Progress": StateInProgress,
	"Resolved":    StateInReview,
	"QA":          StateInReview,
	"In Review":   StateInReview,
	"Closed":      StateCompleted,
	"Done":        StateCompleted,
	"Completed":   StateCompleted,
	"Blocked":     StateBlocked,
}

var priorityMap = map[int]Priority{
	1: PriorityCritical,
	2: PriorityHigh,
	3: PriorityMedium,
	4: PriorityLow,
}

// Story is one work item shaped for the dashboard.
type Story struct {
	ID          int        `json:"id"`
	Type        string     `json:"type"` // "story" or "bug"
	Title       string     `json:"title"`
	State       StoryState `json:"state"`
	Assignee    string     `json:"assignee"`
	Effort      float64    `json:"effort"`
	Priority    Priority   `json:"priority"`
	TargetDate  string     `json:"targetDate,omitempty"`
	Tags        []string   `json:"tags"`
	LastUpdated string     `json:"lastUpdated"`
}

// AssigneeSummary is the per-person rollup shown in the breakdown chart.
type AssigneeSummary struct {
	Name     string  `json:"name"`
	Initials string  `json:"initials"`
	Count    int     `json:"count"`
	Points   float64 `json:"points"`
}

// TeamMember extends the assignee rollup with completion points for the
// team view.
type TeamMember struct {
	Name            string  `json:"name"`
	Initials        string  `json:"initials"`
	StoriesCount    int     `json:"storiesCount"`
	PointsTotal     float64 `json:"pointsTotal"`
	PointsCompleted float64 `json:"pointsCompleted"`
}

// StoryPoints aggregates effort across the sprint.
type StoryPoints struct {
	Total      float64 `json:"total"`
	Completed  float64 `json:"completed"`
	InProgress float64 `json:"inProgress"`
	Remaining  float64 `json:"remaining"`
}

// SprintSummary is the aggregated report behind the dashboard's header,
// charts, and team table.
type SprintSummary struct {
	ProjectName   string             `json:"projectName"`
	SprintName    string             `json:"sprintName"`
	StartDate     string             `json:"startDate,omitempty"`
	EndDate       string             `json:"endDate,omitempty"`
	DaysRemaining int                `json:"daysRemaining"`
	DaysElapsed   int                `json:"daysElapsed"`
	TotalDays     int                `json:"totalDays"`
	Total         int                `json:"total"`
	ByState       map[StoryState]int `json:"byState"`
	ByAssignee    []AssigneeSummary  `json:"byAssignee"`
	StoryPoints   StoryPoints        `json:"storyPoints"`
	Progress      int                `json:"progress"`
	TeamMembers   []TeamMember       `json:"teamMembers"`
}

// IterationInfo is the sprint-timing payload for the header.
type IterationInfo struct {
	Name          string `json:"name"`
	Path          string `json:"path"`
	StartDate     string `json:"startDate,omitempty"`
	EndDate       string `json:"endDate,omitempty"`
	DaysRemaining int    `json:"daysRemaining"`
	DaysElapsed   int    `json:"daysElapsed"`
	TotalDays     int    `json:"totalDays"`
}

// TransformWorkItem normalizes one raw work item into a Story. The raw
// fields are loosely typed; every access tolerates absence.
func TransformWorkItem(item WorkItem, now time.Time) Story {
	fields := item.Fields

	assignee := "Unassigned"
	if assigned, ok := fields["System.AssignedTo"].(map[string]any); ok {
		if name, ok := assigned["displayName"].(string); ok && name != "" {
			assignee = name
		}
	}

	itemType := "story"
	if fieldString(fields, "System.WorkItemType") == "Bug" {
		itemType = "bug"
	}

	changed := fieldString(fields, "System.ChangedDate")
	lastUpdated := "just now"
	if ts, err := time.Parse(time.RFC3339, changed); err == nil {
		lastUpdated = relativeTime(now.Sub(ts))
	}

	var tags []string
	if raw := fieldString(fields, "System.Tags"); raw != "" {
		for _, tag := range strings.Split(raw, ";") {
			if t := strings.TrimSpace(tag); t != "" {
				tags = append(tags, t)
			}
		}
	}

	state := StatePlanned
	if mapped, ok := stateMap[fieldString(fields, "System.State")]; ok {
		state = mapped
	}

	priority := PriorityUnset
	if raw, ok := fields["Microsoft.VSTS.Common.Priority"].(float64); ok {
		if mapped, ok := priorityMap[int(raw)]; ok {
			priority = mapped
		}
	}

	effort, _ := fields["Microsoft.VSTS.Scheduling.Effort"].(float64)

	return Story{
		ID:          item.ID,
		Type:        itemType,
		Title:       fieldString(fields, "System.Title"),
		State:       state,
		Assignee:    assignee,
		Effort:      effort,
		Priority:    priority,
		TargetDate:  fieldString(fields, "Microsoft.VSTS.Scheduling.TargetDate"),
		Tags:        tags,
		LastUpdated: lastUpdated,
	}
}

// BuildSummary aggregates stories into the sprint report.
func BuildSummary(stories []Story, projectName string, iter *Iteration, now time.Time) SprintSummary {
	totalDays, daysElapsed, daysRemaining := sprintDays(iter.Attributes.StartDate, iter.Attributes.FinishDate, now)

	byState := map[StoryState]int{
		StatePlanned:    0,
		StateInProgress: 0,
		StateInReview:   0,
		StateCompleted:  0,
		StateBlocked:    0,
	}

	type rollup struct {
		count           int
		points          float64
		pointsCompleted float64
	}
	assignees := make(map[string]*rollup)

	var totalPoints, completedPoints, inProgressPoints float64
	for _, story := range stories {
		byState[story.State]++
		totalPoints += story.Effort

		switch story.State {
		case StateCompleted:
			completedPoints += story.Effort
		case StateInProgress:
			inProgressPoints += story.Effort
		}

		r := assignees[story.Assignee]
		if r == nil {
			r = &rollup{}
			assignees[story.Assignee] = r
		}
		r.count++
		r.points += story.Effort
		if story.State == StateCompleted {
			r.pointsCompleted += story.Effort
		}
	}

	names := make([]string, 0, len(assignees))
	for name := range assignees {
		names = append(names, name)
	}
	sort.Strings(names)

	byAssignee := make([]AssigneeSummary, 0, len(names))
	teamMembers := make([]TeamMember, 0, len(names))
	for _, name := range names {
		r := assignees[name]
		byAssignee = append(byAssignee, AssigneeSummary{
			Name:     name,
			Initials: initials(name),
			Count:    r.count,
			Points:   r.points,
		})
		teamMembers = append(teamMembers, TeamMember{
			Name:            name,
			Initials:        initials(name),
			StoriesCount:    r.count,
			PointsTotal:     r.points,
			PointsCompleted: r.pointsCompleted,
		})
	}

	progress := 0
	if totalPoints > 0 {
		progress = int(completedPoints/totalPoints*100 + 0.5)
	}

	return SprintSummary{
		ProjectName:   projectName,
		SprintName:    iter.Name,
		StartDate:     iter.Attributes.StartDate,
		EndDate:       iter.Attributes.FinishDate,
		DaysRemaining: daysRemaining,
		DaysElapsed:   daysElapsed,
		TotalDays:     totalDays,
		Total:         len(stories),
		ByState:       byState,
		ByAssignee:    byAssignee,
		StoryPoints: StoryPoints{
			Total:      totalPoints,
			Completed:  completedPoints,
			InProgress: inProgressPoints,
			Remaining:  max(0, totalPoints-completedPoints-inProgressPoints),
		},
		Progress:    progress,
		TeamMembers: teamMembers,
	}
}

// BuildIterationInfo shapes an iteration's timing for the header payload.
func BuildIterationInfo(iter *Iteration, now time.Time) IterationInfo {
	totalDays, daysElapsed, daysRemaining := sprintDays(iter.Attributes.StartDate, iter.Attributes.FinishDate, now)
	return IterationInfo{
		Name:          iter.Name,
		Path:          iter.Path,
		StartDate:     iter.Attributes.StartDate,
		EndDate:       iter.Attributes.FinishDate,
		DaysRemaining: daysRemaining,
		DaysElapsed:   daysElapsed,
		TotalDays:     totalDays,
	}
}

func sprintDays(startDate, endDate string, now time.Time) (totalDays, daysElapsed, daysRemaining int) {
	start, errS := time.Parse(time.RFC3339, startDate)
	end, errE := time.Parse(time.RFC3339, endDate)

	if errS == nil && errE == nil {
		totalDays = ceilDays(end.Sub(start))
	}
	if errS == nil {
		daysElapsed = max(0, ceilDays(now.Sub(start)))
	}
	if errE == nil {
		daysRemaining = max(0, ceilDays(end.Sub(now)))
	}
	return totalDays, daysElapsed, daysRemaining
}

func ceilDays(d time.Duration) int {
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// relativeTime renders durations the way the dashboard expects:
// "just now", "5 min ago", "3 hours ago", "2 days ago".
func relativeTime(d time.Duration) string {
	minutes := int(d.Minutes())
	switch {
	case minutes < 1:
		return "just now"
	case minutes < 60:
		return fmt.Sprintf("%d min ago", minutes)
	case minutes < 24*60:
		hours := minutes / 60
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	default:
		days := minutes / (24 * 60)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	}
}

// initials derives up to two uppercase initials from a display name.
func initials(name string) string {
	var b strings.Builder
	count := 0
	for _, part := range strings.Fields(name) {
		r := []rune(part)[0]
		b.WriteString(strings.ToUpper(string(r)))
		count++
		if count == 2 {
			break
		}
	}
	return b.String()
}

func fieldString(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return s
}
