// Package config resolves marquee settings from flags, environment, and defaults.
//
// # Resolution Precedence
//
// Values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--text, --speed, --width, --plain, --no-color, --debug)
//  2. Environment variables (MARQUEE_TEXT, MARQUEE_SPEED, MARQUEE_WIDTH,
//     MARQUEE_PLAIN, MARQUEE_NO_COLOR, NO_COLOR, MARQUEE_DEBUG)
//  3. Hardcoded defaults
//
// There is no configuration file. Every setting lives for one run only.
//
// # Environment Variables
//
//   - MARQUEE_TEXT: initial marquee text
//   - MARQUEE_SPEED: initial tick period in milliseconds (positive integer)
//   - MARQUEE_WIDTH: fixed marquee width in cells, 0 to follow the terminal
//   - MARQUEE_PLAIN: "true" or "1" to use the plain line renderer
//   - MARQUEE_NO_COLOR or NO_COLOR: "true" or "1" to disable colors
//   - MARQUEE_DEBUG: any non-empty value enables debug logging
package config
