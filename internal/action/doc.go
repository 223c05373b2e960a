// Package action adapts github.com/sethvargo/go-githubactions to the
// needs of setup-rpk.
//
// Core reads inputs, writes log lines and failures as workflow commands,
// registers directories on PATH and publishes step outputs. On top of the
// library it adds key/value log rendering for the installer Logger
// interface, a failed flag for the exit code, and a PATH update for the
// running process so that a freshly installed binary can be found before
// the next step starts.
package action
