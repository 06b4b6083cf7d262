package model

import "strconv"

// Owner is a record whose fields can be translated.
type Owner interface {
	OwnerType() string
	OwnerID() int64
}

// OwnerRef identifies an owner record by type tag and id
type OwnerRef struct {
	Type string `json:"type"`
	ID   int64  `json:"id"`
}

func (r OwnerRef) OwnerType() string { return r.Type }

func (r OwnerRef) OwnerID() int64 { return r.ID }

// Valid reports whether both parts of the reference are set
func (r OwnerRef) Valid() bool {
	return r.Type != "" && r.ID > 0
}

func (r OwnerRef) String() string {
	return r.Type + "#" + strconv.FormatInt(r.ID, 10)
}

// RefOf converts any owner into its reference form. A nil owner yields the zero ref.
func RefOf(o Owner) OwnerRef {
	if o == nil {
		return OwnerRef{}
	}
	return OwnerRef{Type: o.OwnerType(), ID: o.OwnerID()}
}
