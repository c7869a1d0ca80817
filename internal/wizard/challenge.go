package wizard

import (
	"fmt"
	"time"
)

// ChallengeState holds the current challenge image reference and the
// user's typed response. The image reference carries a cache-busting token
// so every regeneration addresses a fresh resource. Clearing the response
// alongside regeneration is the orchestrator's policy, not enforced here.
type ChallengeState struct {
	imageRef string
	response string
	counter  uint64
}

func NewChallengeState() *ChallengeState {
	return &ChallengeState{}
}

// Regenerate produces a new image reference, always distinct from the
// previous one. The nanosecond token alone could collide under a coarse
// clock, so a monotonic counter is folded in.
func (c *ChallengeState) Regenerate() {
	c.counter++
	c.imageRef = fmt.Sprintf("/api/captcha?t=%d-%d", time.Now().UnixNano(), c.counter)
}

// ImageRef returns the current image reference, empty before the first
// regeneration.
func (c *ChallengeState) ImageRef() string {
	return c.imageRef
}

func (c *ChallengeState) SetResponse(response string) {
	c.response = response
}

func (c *ChallengeState) Response() string {
	return c.response
}

func (c *ChallengeState) ClearResponse() {
	c.response = ""
}

// Reset discards both the image reference and the response.
func (c *ChallengeState) Reset() {
	c.imageRef = ""
	c.response = ""
}
