package permissions

// Permissions defines pub/sub permissions for a NATS user.
type Permissions struct {
	Publish   PermissionSet `json:"pub"`
	Subscribe PermissionSet `json:"sub"`
}

// PermissionSet contains allow and deny patterns.
type PermissionSet struct {
	Allow []string `json:"allow,omitempty"`
	Deny  []string `json:"deny,omitempty"`
}

// Builder constructs permission sets for authenticated subjects.
type Builder struct{}

// NewBuilder creates a new permission builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// ForSubject builds the permissions a platform identity may use. Every
// identity may publish request subjects and read result subjects plus its
// own inbox; score submission is further gated per-player by the score
// service, not here.
func (b *Builder) ForSubject(subject string) *Permissions {
	return &Permissions{
		Publish: PermissionSet{
			Allow: []string{
				"tournament.*.requested.v1",
				"score.submission.requested.v1",
				"score.history.requested.v1",
				"leaderboard.retrieval.requested.v1",
			},
		},
		Subscribe: PermissionSet{
			Allow: []string{
				"tournament.>",
				"leaderboard.>",
				"score.>",
				"_INBOX.>",
			},
		},
	}
}
