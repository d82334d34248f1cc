// Command damast forges layered steel billets from YAML recipes into
// pattern welded geometry, exporting meshes, cross-section images and
// operation logs.
package main

func main() {
	Execute()
}
