// Package section describes the seven content documents that feed a landing
// page: their fixed names and order, where they are fetched from, the decoded
// aggregate handed to renderers, and the typed errors raised while loading or
// rendering them.
package section
