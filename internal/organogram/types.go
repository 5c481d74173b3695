package organogram

// ContextBundle is the scoped snapshot of one task and its surroundings.
type ContextBundle struct {
	TaskPath           string       `json:"task_path" yaml:"task_path"`
	Domain             Properties   `json:"domain" yaml:"domain"`
	Component          Properties   `json:"component" yaml:"component"`
	Task               Properties   `json:"task" yaml:"task"`
	Specification      Properties   `json:"specification" yaml:"specification"`
	AcceptanceCriteria Properties   `json:"acceptance_criteria" yaml:"acceptance_criteria"`
	Dependencies       []Properties `json:"dependencies" yaml:"dependencies"`
	DiaryEntries       []Properties `json:"diary_entries" yaml:"diary_entries"`
	Messages           []Properties `json:"messages" yaml:"messages"`
	RFCs               []Properties `json:"rfcs" yaml:"rfcs"`
	Summary            Summary      `json:"summary" yaml:"summary"`
}

// Summary is derived from the bundle contents.
type Summary struct {
	TaskName        string   `json:"task_name" yaml:"task_name"`
	Status          string   `json:"status" yaml:"status"`
	HasDependencies bool     `json:"has_dependencies" yaml:"has_dependencies"`
	BlockedBy       []string `json:"blocked_by" yaml:"blocked_by"`
	RecentActivity  int      `json:"recent_activity" yaml:"recent_activity"`
	UnreadMessages  int      `json:"unread_messages" yaml:"unread_messages"`
	OpenRFCs        int      `json:"open_rfcs" yaml:"open_rfcs"`
}

// Summarize derives the summary for a task and what was gathered around it.
// Dependencies whose status is "Complete" never block.
func Summarize(task Properties, deps, diary, messages, rfcs []Properties) Summary {
	blocked := []string{}
	for _, dep := range deps {
		if dep.Status() != StatusComplete {
			blocked = append(blocked, dep.Name())
		}
	}

	return Summary{
		TaskName:        task.Name(),
		Status:          task.Status(),
		HasDependencies: len(deps) > 0,
		BlockedBy:       blocked,
		RecentActivity:  len(diary),
		UnreadMessages:  len(messages),
		OpenRFCs:        len(rfcs),
	}
}

// WorkLog is one diary entry written by an agent.
type WorkLog struct {
	Agent  string
	Notes  string
	Status string
}

// DiaryEntry is the record created by Journal.LogWork.
type DiaryEntry struct {
	ID        string `json:"id" yaml:"id"`
	TaskPath  string `json:"task_path" yaml:"task_path"`
	Agent     string `json:"agent" yaml:"agent"`
	Status    string `json:"status" yaml:"status"`
	Notes     string `json:"notes" yaml:"notes"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
}

// StatusReport is the project-wide overview returned by Overview.Report.
type StatusReport struct {
	Domains    []DomainProgress `json:"domains" yaml:"domains"`
	Messages   []MessageSummary `json:"messages" yaml:"messages"`
	RFCs       []RFCSummary     `json:"rfcs" yaml:"rfcs"`
	ReadyTasks []string         `json:"ready_tasks" yaml:"ready_tasks"`
}

// DomainProgress counts the tasks of one domain by status.
type DomainProgress struct {
	Domain     string `json:"domain" yaml:"domain"`
	Total      int    `json:"total" yaml:"total"`
	Complete   int    `json:"complete" yaml:"complete"`
	InProgress int    `json:"in_progress" yaml:"in_progress"`
	NotStarted int    `json:"not_started" yaml:"not_started"`
	Percent    int    `json:"percent" yaml:"percent"`
}

// MessageSummary is an unread message as listed in the overview.
type MessageSummary struct {
	From     string `json:"from" yaml:"from"`
	To       string `json:"to" yaml:"to"`
	Subject  string `json:"subject" yaml:"subject"`
	Priority string `json:"priority" yaml:"priority"`
}

// RFCSummary is an open RFC as listed in the overview.
type RFCSummary struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Priority string `json:"priority" yaml:"priority"`
}
