// Package config loads the action's settings from the runner environment.
//
// Inputs arrive as INPUT_<NAME> variables, the way the GitHub Actions
// runner passes `with:` values to an action. For local runs a .env file in
// the working directory is loaded first, so
//
//	INPUT_VERSION=23.2.1
//	SETUP_RPK_BASE_URL=http://localhost:8080/releases
//
// behaves the same as the corresponding workflow inputs. Variables already
// present in the environment take precedence over the .env file.
package config
