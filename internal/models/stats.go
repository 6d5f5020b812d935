package models

import "time"

// RenderStats summarizes one walk over a project tree.
type RenderStats struct {
	Root       string        // Root directory that was rendered
	Entries    int           // Entries emitted, composites counted once
	Composites int           // File/directory pairs folded together
	Unreadable int           // Directories whose children could not be read
	Duration   time.Duration // Wall time of the walk
	Truncated  bool          // MaxDepth cut the walk short somewhere
}
