// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logging configures structured logging for songser.
//
// All output goes through log/slog with a JSON handler on stderr, so stdout
// stays free for serialized tracks. Every record carries the module name and
// version; debug level adds source locations.
//
// Setting the default logger early in main():
//
//	logging.SetDefaultStructuredLogger("songser", version)
//	slog.Info("serialized track", "id", t.ID, "format", format)
//
// With an explicit level (e.g. from --log-level):
//
//	logging.SetDefaultStructuredLoggerWithLevel("songser", version, "debug")
//
// The LOG_LEVEL environment variable is used when no level is given.
// Supported levels (case-insensitive): debug, info, warn/warning, error.
package logging
