// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI has two screens, both painted from [session.View]:
//  1. Auth : login and sign up forms built on bubbles/textinput
//  2. Home : search with a results dropdown, quick picks, recommendation cards, and the favorites grid
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern. It never calls the book
// service itself; keys are translated into [session.Controller] calls, and the controller's completions are
// posted to an [eventloop.Queue] that [Pump] forwards into the program as dispatch messages. Every controller
// callback therefore runs inside Update.
//
// While recommendations load, input is ignored and a spinner is shown. A failed lookup opens a modal alert whose
// suggestions can be selected directly.
//
// Keyboard navigation uses tab/shift+tab between sections, arrows within them, and contextual help via
// charmbracelet/bubbles/help.
package ui
