// Command slideproj shows the images found in a set of directories as a
// full-window slideshow.
package main

func main() {
	execute()
}
