// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern turns user input into a LIKE/ILIKE substring pattern.
// Wildcards in the input match literally; backslash is PostgreSQL's default
// LIKE escape character.
func ContainsPattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}
