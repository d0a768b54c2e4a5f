package entities

import "testing"

func TestMeetingStatusTransitions(t *testing.T) {
	all := []MeetingStatus{
		MeetingStatusQueued,
		MeetingStatusProcessing,
		MeetingStatusCompleted,
		MeetingStatusFailed,
	}

	allowed := map[MeetingStatus]map[MeetingStatus]bool{
		MeetingStatusQueued:     {MeetingStatusProcessing: true},
		MeetingStatusProcessing: {MeetingStatusCompleted: true, MeetingStatusFailed: true},
		MeetingStatusCompleted:  {},
		MeetingStatusFailed:     {},
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[from][to]
			if got := from.CanTransitionTo(to); got != want {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestTerminalStatesStayTerminal(t *testing.T) {
	for _, s := range []MeetingStatus{MeetingStatusCompleted, MeetingStatusFailed} {
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []MeetingStatus{MeetingStatusQueued, MeetingStatusProcessing} {
		if s.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestMarkCompletedSetsTranscript(t *testing.T) {
	m := NewMeeting("Sprint planning", nil, "s3://bucket/audio.wav")
	if m.Status != MeetingStatusQueued {
		t.Fatalf("new meeting status = %s, want queued", m.Status)
	}

	m.Status = MeetingStatusProcessing
	m.MarkCompleted("hello world")

	if m.Status != MeetingStatusCompleted {
		t.Fatalf("status = %s, want completed", m.Status)
	}
	if m.Transcript == nil || *m.Transcript != "hello world" {
		t.Fatalf("transcript not recorded")
	}
	if m.CompletedAt == nil {
		t.Fatalf("completed_at not recorded")
	}
}

func TestMarkFailedSetsReason(t *testing.T) {
	m := NewMeeting("Standup", nil, "s3://bucket/audio.wav")
	m.Status = MeetingStatusProcessing
	m.MarkFailed("transcription: upstream error")

	if m.Status != MeetingStatusFailed {
		t.Fatalf("status = %s, want failed", m.Status)
	}
	if m.FailureReason == nil || *m.FailureReason == "" {
		t.Fatalf("failure reason not recorded")
	}
	if m.Transcript != nil {
		t.Fatalf("failed meeting must not carry a transcript")
	}
}
