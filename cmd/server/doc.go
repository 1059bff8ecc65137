// Command server runs the parcelfs HTTP service.
package main
