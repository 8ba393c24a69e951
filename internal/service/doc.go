// Package service implements the visualization use cases of rhiza.
//
// VisualizationService coordinates the HTTP handlers, the backend client and
// the layout engines. Every configured container shows at most one graph at a
// time; rendering into a container disposes whatever it showed before, and an
// unknown container id is a *domain.MountError.
//
// # Event System
//
// The service publishes events on an EventBus: a graph was rendered, a lens
// was applied, a container was closed, the theme was reloaded, and the frames
// of running layouts (throttled per container). The serve command forwards
// bus events to the SSE hub.
//
// # Themes
//
// ThemeStore holds the theme new layouts start from. The file watcher reloads
// it when the theme file changes; running layouts keep their own copy.
package service
