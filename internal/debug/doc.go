// Package debug provides the structured logger shared by the scene packages.
//
// Logging is a no-op until a logger is installed with [SetLogger] or a file
// sink is opened with [Init]. When the SCENE_DEBUG environment variable is
// set to a file path, [InitFromEnv] opens that file at debug level.
package debug
