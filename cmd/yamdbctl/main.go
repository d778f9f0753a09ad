// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command yamdbctl bundles the operator tasks of a YaMDb deployment:
// migrations, fixture loading, database cleanup, superuser bootstrap and
// access token minting.
package main

import "github.com/taibuivan/yamdb/cmd/yamdbctl/commands"

func main() {
	commands.Execute()
}
