// Command subvoice narrates videos: it synthesizes speech for every subtitle
// cue, fits each clip to its cue's time window, composes a full narration
// track, and muxes the track into the video as its sole audio stream.
package main
