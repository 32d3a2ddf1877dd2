package conversation

// layout places the pieces of a request within the assembled transcript.
// The image is always attached to the first user turn. Which text rides
// with it, and what follows, depends only on whether history exists.
type layout struct {
	// captionFromHistory pairs the image with history[0] instead of the
	// current question.
	captionFromHistory bool

	// replayHistory appends history[1:] after the image turn.
	replayHistory bool

	// trailingQuestion appends the current question as the final user turn.
	trailingQuestion bool
}

func layoutFor(hasHistory bool) layout {
	if !hasHistory {
		return layout{}
	}
	return layout{
		captionFromHistory: true,
		replayHistory:      true,
		trailingQuestion:   true,
	}
}

// size is the number of messages the layout produces for n history turns.
func (l layout) size(n int) int {
	size := 2 // system + image turn
	if l.replayHistory && n > 1 {
		size += n - 1
	}
	if l.trailingQuestion {
		size++
	}
	return size
}
