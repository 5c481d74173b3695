package organogram

import (
	"strconv"
	"strings"
)

// Separator joins the segments of a task path.
const Separator = "→"

// TaskPath addresses one task by its full position in the organogram.
type TaskPath struct {
	Domain    string
	Component string
	Task      string
}

// ParseTaskPath splits raw on Separator into exactly three trimmed, non-empty segments.
func ParseTaskPath(raw string) (TaskPath, error) {
	parts := strings.Split(raw, Separator)
	if len(parts) != 3 {
		return TaskPath{}, &InvalidPathError{
			Path:   raw,
			Reason: "expected 3 segments, got " + strconv.Itoa(len(parts)),
		}
	}

	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
		if parts[i] == "" {
			return TaskPath{}, &InvalidPathError{Path: raw, Reason: "empty " + string(segmentAt(i)) + " segment"}
		}
	}

	return TaskPath{Domain: parts[0], Component: parts[1], Task: parts[2]}, nil
}

// JoinPath builds the canonical path string for the three segments.
func JoinPath(domain, component, task string) string {
	return domain + " " + Separator + " " + component + " " + Separator + " " + task
}

func (p TaskPath) String() string {
	return JoinPath(p.Domain, p.Component, p.Task)
}

func segmentAt(i int) Segment {
	switch i {
	case 0:
		return SegmentDomain
	case 1:
		return SegmentComponent
	default:
		return SegmentTask
	}
}
