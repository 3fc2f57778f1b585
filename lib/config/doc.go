// Copyright 2026 The Timeflow Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for timeflow.
//
// Configuration is loaded from a single file specified by either the
// TIMEFLOW_CONFIG environment variable (via [Load]) or a --config
// flag (via [LoadFile]). There are no fallbacks, no home-directory
// discovery, and no automatic file search; an unset path means the
// documented defaults. This keeps configuration deterministic and
// auditable with no hidden overrides.
//
// YAML is the primary format. Files ending in .json or .jsonc are
// also accepted, with comments and trailing commas stripped before
// parsing, for operators who keep commented policy files.
//
// [Config].Policy converts the loaded file into the timectrl.Policy
// collaborator the core consults every tick. The conversion
// precomputes lookup sets, so reload cost is paid once at load time
// rather than per tick.
package config
