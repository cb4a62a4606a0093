package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// UserProgress is one completed quiz. Rows are append-only.
type UserProgress struct {
	ent.Schema
}

func (UserProgress) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "user_progress"},
	}
}

func (UserProgress) Fields() []ent.Field {
	return []ent.Field{
		field.String("username").
			NotEmpty().
			Immutable().
			Comment("Learner who took the quiz"),
		field.String("topic").
			Immutable().
			Comment("Topic the quiz covered"),
		field.Int("score").
			NonNegative().
			Immutable().
			Comment("Number of correct answers"),
		field.Time("created_at").
			Default(time.Now).
			Immutable().
			Comment("When the quiz was submitted"),
	}
}

func (UserProgress) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("username"),
	}
}
