package core

import "testing"

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession("")
	if s.ID == "" {
		t.Fatal("expected generated id")
	}
	if s.CurrentAgent != AgentTriage {
		t.Errorf("expected triage agent, got %q", s.CurrentAgent)
	}
	if !s.Context.IsAttendee || s.Context.ConferenceName != DefaultConferenceName {
		t.Errorf("unexpected default context: %+v", s.Context)
	}
	if len(s.Messages) != 0 || len(s.Events) != 0 {
		t.Error("expected empty histories")
	}
}

func TestSession_Clone(t *testing.T) {
	s := NewSession("s1")
	s.Context.SocialLinks["x"] = "https://example.com/x"
	s.AddMessage(NewMessageRecord(AgentTriage, "hello"))

	clone := s.Clone()
	if clone == s {
		t.Fatal("clone should be a different pointer")
	}

	clone.AddMessage(NewMessageRecord(AgentSchedule, "again"))
	clone.Context.SocialLinks["y"] = "https://example.com/y"

	if len(s.Messages) != 1 {
		t.Errorf("original message history mutated: %d", len(s.Messages))
	}
	if _, ok := s.Context.SocialLinks["y"]; ok {
		t.Error("original social links mutated through clone")
	}
}

func TestCoerceText(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"REG-42", "REG-42"},
		{float64(12345), "12345"},
		{int64(7), "7"},
		{42, "42"},
	}
	for _, c := range cases {
		if got := CoerceText(c.in); got != c.want {
			t.Errorf("CoerceText(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
