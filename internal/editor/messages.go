package editor

// SidebarAnimationMsg advances the sidebar show/hide animation.
type SidebarAnimationMsg struct{}

// ChartAnimationMsg advances an animated chart render.
type ChartAnimationMsg struct{}

// StatusExpiredMsg clears a transient status message.
//
// Seq ties the message to the status it was scheduled for, so an older
// timer does not clear a newer status.
type StatusExpiredMsg struct {
	Seq int
}
