package leveldata

import "encoding/xml"

// The raw document keeps every attribute as a string so a malformed value
// only costs the element it sits on.

type tmxMap struct {
	XMLName      xml.Name         `xml:"map"`
	Width        string           `xml:"width,attr"`
	Height       string           `xml:"height,attr"`
	TileWidth    string           `xml:"tilewidth,attr"`
	TileHeight   string           `xml:"tileheight,attr"`
	Tilesets     []tmxTileset     `xml:"tileset"`
	Layers       []tmxLayer       `xml:"layer"`
	ObjectGroups []tmxObjectGroup `xml:"objectgroup"`
}

type tmxTileset struct {
	FirstGID   string    `xml:"firstgid,attr"`
	Source     string    `xml:"source,attr"`
	Name       string    `xml:"name,attr"`
	TileWidth  string    `xml:"tilewidth,attr"`
	TileHeight string    `xml:"tileheight,attr"`
	TileCount  string    `xml:"tilecount,attr"`
	Columns    string    `xml:"columns,attr"`
	Spacing    string    `xml:"spacing,attr"`
	Margin     string    `xml:"margin,attr"`
	Image      *tmxImage `xml:"image"`
}

type tmxImage struct {
	Source string `xml:"source,attr"`
	Width  string `xml:"width,attr"`
	Height string `xml:"height,attr"`
}

type tmxLayer struct {
	Name string  `xml:"name,attr"`
	Data tmxData `xml:"data"`
}

type tmxData struct {
	Encoding    string    `xml:"encoding,attr"`
	Compression string    `xml:"compression,attr"`
	Tiles       []tmxTile `xml:"tile"`
}

// An empty cell is written as <tile/> with no gid.
type tmxTile struct {
	GID string `xml:"gid,attr"`
}

type tmxObjectGroup struct {
	Name    string      `xml:"name,attr"`
	Objects []tmxObject `xml:"object"`
}

type tmxObject struct {
	ID       string       `xml:"id,attr"`
	Name     string       `xml:"name,attr"`
	X        string       `xml:"x,attr"`
	Y        string       `xml:"y,attr"`
	Width    string       `xml:"width,attr"`
	Height   string       `xml:"height,attr"`
	Polyline *tmxPolyline `xml:"polyline"`
}

type tmxPolyline struct {
	Points string `xml:"points,attr"`
}
