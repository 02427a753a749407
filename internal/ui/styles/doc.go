// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the promptpro TUI.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection. The theme can also be pinned with the ui.theme setting.

# Color System (colors.go)

	Indigo  - Brand, focused panes, primary buttons
	Violet  - Strategy section, secondary accent
	Emerald - Success toasts and the copy flash
	Rose    - Errors, field errors and error toasts
	Amber   - Quota warnings

# Theme System (theme.go)

	theme := styles.NewTheme("auto")
	left := theme.Pane(focused).Width(w).Render(body)

# Animation System (animations.go)

	spin := styles.DotsSpinner.Bubbles()
*/
package styles
