// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the promptpro command tree.
//
// Invoked without a subcommand, promptpro runs the full-screen optimizer.
// The subcommands cover one-shot use from scripts and shells:
//
//	promptpro optimize "write a business plan" --context business
//	echo "i recieve ur messege" | promptpro optimize --context rephrase
//	promptpro repl
//	promptpro login | signup | logout | whoami
//	promptpro quota | contexts | health
//	promptpro serve
//	promptpro config show | path | init
//
// Errors are returned, never printed by commands. Execute prints them once
// with the hint carried by internal/errors values.
package cli
