// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "net/http"

// Predicate is a request-level access decision over the HTTP method and the
// (possibly nil) caller.
type Predicate func(method string, actor *Actor) bool

// IsSafeMethod reports whether method never mutates state.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}

// CatalogWrite gates categories, genres and titles: reads are public,
// everything else needs an admin.
func CatalogWrite(method string, actor *Actor) bool {
	return IsSafeMethod(method) || actor.IsAdmin()
}

// ReviewComment gates review and comment collections: reads are public,
// writes need any authenticated caller.
func ReviewComment(method string, actor *Actor) bool {
	return IsSafeMethod(method) || actor != nil
}

// ReviewCommentObject gates a single review or comment authored by authorID.
//
// A moderator may always delete. Otherwise the caller must be the author
// unless the method is a read.
func ReviewCommentObject(method string, actor *Actor, authorID int64) bool {
	if method == http.MethodDelete && actor.IsModerator() {
		return true
	}
	if IsSafeMethod(method) {
		return true
	}
	return actor != nil && actor.ID == authorID
}

// AdminOnly gates user management regardless of method.
func AdminOnly(_ string, actor *Actor) bool {
	return actor.IsAdmin()
}

// Authenticated admits any known caller regardless of method.
func Authenticated(_ string, actor *Actor) bool {
	return actor != nil
}
