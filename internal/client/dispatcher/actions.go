package dispatcher

import "github.com/dmitrijs2005/gophmedia/internal/client/models"

// Type is the discriminator carried by every action.
type Type string

const (
	TypeSetMediaQuery           Type = "SET_MEDIA_QUERY"
	TypeFetchMediaItem          Type = "FETCH_MEDIA_ITEM"
	TypeReceiveMediaItem        Type = "RECEIVE_MEDIA_ITEM"
	TypeFetchMediaItems         Type = "FETCH_MEDIA_ITEMS"
	TypeReceiveMediaItems       Type = "RECEIVE_MEDIA_ITEMS"
	TypeCreateMediaItem         Type = "CREATE_MEDIA_ITEM"
	TypeRemoveMediaItem         Type = "REMOVE_MEDIA_ITEM"
	TypeFetchMediaLimits        Type = "FETCH_MEDIA_LIMITS"
	TypeSetLibrarySelectedItems Type = "SET_MEDIA_LIBRARY_SELECTED_ITEMS"
	TypeClearValidationErrors   Type = "CLEAR_MEDIA_VALIDATION_ERRORS"
)

// Action is the closed set of media messages. Only types in this package
// implement it.
type Action interface {
	Type() Type
	Site() int64
	action()
}

// SetMediaQuery replaces the library query of a site.
type SetMediaQuery struct {
	SiteID int64
	Query  models.Query
}

// FetchMediaItem announces a single-item fetch.
type FetchMediaItem struct {
	SiteID int64
	ID     string
}

// ReceiveMediaItem carries one record. As an intent it is an optimistic edit;
// as a result it carries the server record or the error. ID names the
// placeholder the record replaces, when there is one.
type ReceiveMediaItem struct {
	SiteID int64
	ID     string
	Data   *models.MediaRecord
	Error  error
}

// FetchMediaItems announces a next-page fetch.
type FetchMediaItems struct {
	SiteID int64
}

// ReceiveMediaItems carries one page for the query it was fetched with.
type ReceiveMediaItems struct {
	SiteID int64
	Data   *models.MediaList
	Error  error
	Query  models.Query
}

// CreateMediaItem adds a placeholder record ahead of its upload.
type CreateMediaItem struct {
	SiteID int64
	Data   models.MediaRecord
}

// RemoveMediaItem removes a record: optimistically as an intent, with the
// server's confirmation or error as a result.
type RemoveMediaItem struct {
	SiteID int64
	Data   *models.MediaRecord
	Error  error
}

// FetchMediaLimits invalidates the site's upload quota.
type FetchMediaLimits struct {
	SiteID int64
}

// SetLibrarySelectedItems replaces the library selection.
type SetLibrarySelectedItems struct {
	SiteID int64
	Data   []models.MediaRecord
}

// ClearValidationErrors drops validation errors of a site: all of them, those
// of ItemID, or those of ErrorType.
type ClearValidationErrors struct {
	SiteID    int64
	ItemID    string
	ErrorType models.ValidationErrorType
}

func (SetMediaQuery) Type() Type           { return TypeSetMediaQuery }
func (FetchMediaItem) Type() Type          { return TypeFetchMediaItem }
func (ReceiveMediaItem) Type() Type        { return TypeReceiveMediaItem }
func (FetchMediaItems) Type() Type         { return TypeFetchMediaItems }
func (ReceiveMediaItems) Type() Type       { return TypeReceiveMediaItems }
func (CreateMediaItem) Type() Type         { return TypeCreateMediaItem }
func (RemoveMediaItem) Type() Type         { return TypeRemoveMediaItem }
func (FetchMediaLimits) Type() Type        { return TypeFetchMediaLimits }
func (SetLibrarySelectedItems) Type() Type { return TypeSetLibrarySelectedItems }
func (ClearValidationErrors) Type() Type   { return TypeClearValidationErrors }

func (a SetMediaQuery) Site() int64           { return a.SiteID }
func (a FetchMediaItem) Site() int64          { return a.SiteID }
func (a ReceiveMediaItem) Site() int64        { return a.SiteID }
func (a FetchMediaItems) Site() int64         { return a.SiteID }
func (a ReceiveMediaItems) Site() int64       { return a.SiteID }
func (a CreateMediaItem) Site() int64         { return a.SiteID }
func (a RemoveMediaItem) Site() int64         { return a.SiteID }
func (a FetchMediaLimits) Site() int64        { return a.SiteID }
func (a SetLibrarySelectedItems) Site() int64 { return a.SiteID }
func (a ClearValidationErrors) Site() int64   { return a.SiteID }

func (SetMediaQuery) action()           {}
func (FetchMediaItem) action()          {}
func (ReceiveMediaItem) action()        {}
func (FetchMediaItems) action()         {}
func (ReceiveMediaItems) action()       {}
func (CreateMediaItem) action()         {}
func (RemoveMediaItem) action()         {}
func (FetchMediaLimits) action()        {}
func (SetLibrarySelectedItems) action() {}
func (ClearValidationErrors) action()   {}
