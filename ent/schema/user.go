package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
)

// User is a registered learner. The username is the primary key.
type User struct {
	ent.Schema
}

func (User) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "users"},
	}
}

func (User) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("username").
			NotEmpty().
			Immutable().
			Comment("Login name, unique and case-sensitive"),
		field.String("password").
			Sensitive().
			Comment("bcrypt hash of the password"),
	}
}
