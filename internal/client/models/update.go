package models

// MediaUpdate is a partial change to a media record. Nil fields are left
// untouched. Media replaces the attached file with new content; MediaURL asks
// the server to replace it from a URL.
type MediaUpdate struct {
	ID          string
	Title       *string
	Caption     *string
	Description *string
	Alt         *string
	ParentID    *int64
	Media       *UploadFile
	MediaURL    string
}

// Fields returns the attribute changes as API field names.
func (u MediaUpdate) Fields() map[string]string {
	fields := map[string]string{}
	if u.Title != nil {
		fields["title"] = *u.Title
	}
	if u.Caption != nil {
		fields["caption"] = *u.Caption
	}
	if u.Description != nil {
		fields["description"] = *u.Description
	}
	if u.Alt != nil {
		fields["alt"] = *u.Alt
	}
	return fields
}

// Ptr returns a pointer to v. Handy for building MediaUpdate literals.
func Ptr[T any](v T) *T {
	return &v
}
