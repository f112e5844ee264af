package plex

import "encoding/xml"

// containerInfo holds the attributes common to every MediaContainer
type containerInfo struct {
	Size                int    `xml:"size,attr"`
	TotalSize           int    `xml:"totalSize,attr"`
	Offset              int    `xml:"offset,attr"`
	AllowSync           string `xml:"allowSync,attr"`
	Identifier          string `xml:"identifier,attr"`
	LibrarySectionID    string `xml:"librarySectionID,attr"`
	LibrarySectionTitle string `xml:"librarySectionTitle,attr"`
	LibrarySectionUUID  string `xml:"librarySectionUUID,attr"`
	MediaTagPrefix      string `xml:"mediaTagPrefix,attr"`
	MediaTagVersion     string `xml:"mediaTagVersion,attr"`
	Title1              string `xml:"title1,attr"`
	Title2              string `xml:"title2,attr"`
	ViewGroup           string `xml:"viewGroup,attr"`
}

func (c containerInfo) totalSize() int { return c.TotalSize }

// === Account service ===

// user is the sign_in.xml response
type user struct {
	XMLName             xml.Name `xml:"user"`
	ID                  string   `xml:"id,attr"`
	UUID                string   `xml:"uuid,attr"`
	Username            string   `xml:"username,attr"`
	Title               string   `xml:"title,attr"`
	AuthToken           string   `xml:"authToken,attr"`
	AuthenticationToken string   `xml:"authenticationToken,attr"`
}

type deviceContainer struct {
	XMLName       xml.Name `xml:"MediaContainer"`
	Size          string   `xml:"size,attr"`
	PublicAddress string   `xml:"publicAddress,attr"`
	Devices       []Device `xml:"Device" validate:"dive"`
}

// Device is a server, player or client registered to the account
type Device struct {
	Name                 string       `xml:"name,attr" json:"name" validate:"required"`
	Product              string       `xml:"product,attr" json:"product"`
	ProductVersion       string       `xml:"productVersion,attr" json:"productVersion"`
	Platform             string       `xml:"platform,attr" json:"platform"`
	PlatformVersion      string       `xml:"platformVersion,attr" json:"platformVersion"`
	Device               string       `xml:"device,attr" json:"device"`
	ClientIdentifier     string       `xml:"clientIdentifier,attr" json:"clientIdentifier" validate:"required"`
	CreatedAt            string       `xml:"createdAt,attr" json:"createdAt"`
	LastSeenAt           string       `xml:"lastSeenAt,attr" json:"lastSeenAt"`
	ProvidesList         string       `xml:"provides,attr" json:"provides"`
	Owned                string       `xml:"owned,attr" json:"owned,omitempty"`
	AccessToken          string       `xml:"accessToken,attr" json:"-"`
	PublicAddress        string       `xml:"publicAddress,attr" json:"publicAddress"`
	PublicAddressMatches string       `xml:"publicAddressMatches,attr" json:"publicAddressMatches,omitempty"`
	Presence             string       `xml:"presence,attr" json:"presence,omitempty"`
	HTTPSRequired        string       `xml:"httpsRequired,attr" json:"httpsRequired,omitempty"`
	Relay                string       `xml:"relay,attr" json:"relay,omitempty"`
	Version              string       `xml:"version,attr" json:"version,omitempty"`
	Model                string       `xml:"model,attr" json:"model,omitempty"`
	Vendor               string       `xml:"vendor,attr" json:"vendor,omitempty"`
	Connections          []Connection `xml:"Connection" json:"connections" validate:"dive"`
}

// Connection is one network endpoint at which a device can be reached
type Connection struct {
	Protocol string `xml:"protocol,attr" json:"protocol,omitempty"`
	Address  string `xml:"address,attr" json:"address,omitempty"`
	Port     string `xml:"port,attr" json:"port,omitempty"`
	URI      string `xml:"uri,attr" json:"uri,omitempty" validate:"required_without=Address"`
	Local    string `xml:"local,attr" json:"local,omitempty"`
}

// === Server hierarchy ===

// ServerInfo is the root MediaContainer of a Plex Media Server
type ServerInfo struct {
	XMLName                       xml.Name    `xml:"MediaContainer"`
	Size                          int         `xml:"size,attr"`
	FriendlyName                  string      `xml:"friendlyName,attr"`
	MachineIdentifier             string      `xml:"machineIdentifier,attr" validate:"required"`
	Version                       string      `xml:"version,attr"`
	Platform                      string      `xml:"platform,attr"`
	PlatformVersion               string      `xml:"platformVersion,attr"`
	CountryCode                   string      `xml:"countryCode,attr"`
	MyPlex                        string      `xml:"myPlex,attr"`
	MyPlexUsername                string      `xml:"myPlexUsername,attr"`
	MyPlexSubscription            string      `xml:"myPlexSubscription,attr"`
	MyPlexSigninState             string      `xml:"myPlexSigninState,attr"`
	AllowSync                     string      `xml:"allowSync,attr"`
	AllowSharing                  string      `xml:"allowSharing,attr"`
	Multiuser                     string      `xml:"multiuser,attr"`
	TranscoderVideo               string      `xml:"transcoderVideo,attr"`
	TranscoderAudio               string      `xml:"transcoderAudio,attr"`
	TranscoderActiveVideoSessions int         `xml:"transcoderActiveVideoSessions,attr"`
	UpdatedAt                     int64       `xml:"updatedAt,attr"`
	Directories                   []Directory `xml:"Directory"`
}

// Directory is a navigable child of the server root or library root
type Directory struct {
	Count int    `xml:"count,attr"`
	Key   string `xml:"key,attr"`
	Title string `xml:"title,attr"`
}

// LibraryInfo is the /library MediaContainer
type LibraryInfo struct {
	XMLName xml.Name `xml:"MediaContainer"`
	containerInfo
	Art         string      `xml:"art,attr"`
	Content     string      `xml:"content,attr"`
	Directories []Directory `xml:"Directory"`
}

type sectionContainer struct {
	XMLName xml.Name `xml:"MediaContainer"`
	containerInfo
	Sections []Section `xml:"Directory" validate:"dive"`
}

// Section is a typed content root of a library
type Section struct {
	Key        string     `xml:"key,attr" json:"key" validate:"required"`
	Type       string     `xml:"type,attr" json:"type" validate:"required"`
	Title      string     `xml:"title,attr" json:"title" validate:"required"`
	UUID       string     `xml:"uuid,attr" json:"uuid"`
	Agent      string     `xml:"agent,attr" json:"agent,omitempty"`
	Scanner    string     `xml:"scanner,attr" json:"scanner,omitempty"`
	Language   string     `xml:"language,attr" json:"language,omitempty"`
	Art        string     `xml:"art,attr" json:"art,omitempty"`
	Thumb      string     `xml:"thumb,attr" json:"thumb,omitempty"`
	Composite  string     `xml:"composite,attr" json:"composite,omitempty"`
	Refreshing string     `xml:"refreshing,attr" json:"refreshing,omitempty"`
	AllowSync  string     `xml:"allowSync,attr" json:"allowSync,omitempty"`
	UpdatedAt  int64      `xml:"updatedAt,attr" json:"updatedAt,omitempty"`
	CreatedAt  int64      `xml:"createdAt,attr" json:"createdAt,omitempty"`
	ScannedAt  int64      `xml:"scannedAt,attr" json:"scannedAt,omitempty"`
	Locations  []Location `xml:"Location" json:"locations,omitempty"`
}

// Location is a filesystem path backing a section
type Location struct {
	ID   string `xml:"id,attr" json:"id"`
	Path string `xml:"path,attr" json:"path"`
}

// === Content records ===

// Tag is a genre, director, role, country or similar label
type Tag struct {
	Tag string `xml:"tag,attr"`
}

// Media is one encoded version of a video or track
type Media struct {
	ID              string `xml:"id,attr"`
	Duration        int64  `xml:"duration,attr"`
	Bitrate         int    `xml:"bitrate,attr"`
	Width           int    `xml:"width,attr"`
	Height          int    `xml:"height,attr"`
	AspectRatio     string `xml:"aspectRatio,attr"`
	AudioChannels   int    `xml:"audioChannels,attr"`
	AudioCodec      string `xml:"audioCodec,attr"`
	VideoCodec      string `xml:"videoCodec,attr"`
	VideoResolution string `xml:"videoResolution,attr"`
	Container       string `xml:"container,attr"`
	VideoFrameRate  string `xml:"videoFrameRate,attr"`
	Parts           []Part `xml:"Part"`
}

// Part is a file backing a Media entry
type Part struct {
	ID        string `xml:"id,attr"`
	Key       string `xml:"key,attr"`
	Duration  int64  `xml:"duration,attr"`
	File      string `xml:"file,attr"`
	Size      int64  `xml:"size,attr"`
	Container string `xml:"container,attr"`
}

// Video is a movie or an episode
type Video struct {
	RatingKey             string  `xml:"ratingKey,attr" validate:"required"`
	Key                   string  `xml:"key,attr"`
	GUID                  string  `xml:"guid,attr"`
	Type                  string  `xml:"type,attr"`
	Title                 string  `xml:"title,attr" validate:"required"`
	TitleSort             string  `xml:"titleSort,attr"`
	Studio                string  `xml:"studio,attr"`
	ContentRating         string  `xml:"contentRating,attr"`
	Summary               string  `xml:"summary,attr"`
	Rating                float64 `xml:"rating,attr"`
	Year                  int     `xml:"year,attr"`
	Thumb                 string  `xml:"thumb,attr"`
	Art                   string  `xml:"art,attr"`
	Duration              int64   `xml:"duration,attr"`
	ViewOffset            int64   `xml:"viewOffset,attr"`
	ViewCount             int     `xml:"viewCount,attr"`
	LastViewedAt          int64   `xml:"lastViewedAt,attr"`
	OriginallyAvailableAt string  `xml:"originallyAvailableAt,attr"`
	AddedAt               int64   `xml:"addedAt,attr"`
	UpdatedAt             int64   `xml:"updatedAt,attr"`

	// Episode-only
	GrandparentTitle string `xml:"grandparentTitle,attr"`
	ParentRatingKey  string `xml:"parentRatingKey,attr"`
	ParentIndex      int    `xml:"parentIndex,attr"`
	Index            int    `xml:"index,attr"`

	Media     []Media `xml:"Media"`
	Genres    []Tag   `xml:"Genre"`
	Directors []Tag   `xml:"Director"`
	Writers   []Tag   `xml:"Writer"`
	Countries []Tag   `xml:"Country"`
	Roles     []Tag   `xml:"Role"`
}

type videoContainer struct {
	XMLName xml.Name `xml:"MediaContainer"`
	containerInfo
	Videos []Video `xml:"Video" validate:"dive"`
}

func (c videoContainer) items() []Video { return c.Videos }

// Album is a music album, listed as a Directory in music sections
type Album struct {
	RatingKey             string `xml:"ratingKey,attr" validate:"required"`
	Key                   string `xml:"key,attr"`
	ParentRatingKey       string `xml:"parentRatingKey,attr"`
	Type                  string `xml:"type,attr"`
	Title                 string `xml:"title,attr" validate:"required"`
	ParentKey             string `xml:"parentKey,attr"`
	ParentTitle           string `xml:"parentTitle,attr"`
	Summary               string `xml:"summary,attr"`
	Index                 int    `xml:"index,attr"`
	Year                  int    `xml:"year,attr"`
	Thumb                 string `xml:"thumb,attr"`
	ParentThumb           string `xml:"parentThumb,attr"`
	OriginallyAvailableAt string `xml:"originallyAvailableAt,attr"`
	LeafCount             int    `xml:"leafCount,attr"`
	ViewedLeafCount       int    `xml:"viewedLeafCount,attr"`
	ViewCount             int    `xml:"viewCount,attr"`
	AddedAt               int64  `xml:"addedAt,attr"`
	UpdatedAt             int64  `xml:"updatedAt,attr"`
	LastViewedAt          int64  `xml:"lastViewedAt,attr"`
	LibrarySectionID      string `xml:"librarySectionID,attr"`
	Genres                []Tag  `xml:"Genre"`
}

type albumContainer struct {
	XMLName xml.Name `xml:"MediaContainer"`
	containerInfo
	Albums []Album `xml:"Directory" validate:"dive"`
}

func (c albumContainer) items() []Album { return c.Albums }

// Track is a single audio track of an album
type Track struct {
	RatingKey            string  `xml:"ratingKey,attr" validate:"required"`
	Key                  string  `xml:"key,attr"`
	ParentRatingKey      string  `xml:"parentRatingKey,attr"`
	GrandparentRatingKey string  `xml:"grandparentRatingKey,attr"`
	Type                 string  `xml:"type,attr"`
	Title                string  `xml:"title,attr" validate:"required"`
	ParentTitle          string  `xml:"parentTitle,attr"`
	GrandparentTitle     string  `xml:"grandparentTitle,attr"`
	OriginalTitle        string  `xml:"originalTitle,attr"`
	Summary              string  `xml:"summary,attr"`
	Index                int     `xml:"index,attr"`
	ParentIndex          int     `xml:"parentIndex,attr"`
	Year                 int     `xml:"year,attr"`
	Duration             int64   `xml:"duration,attr"`
	ViewCount            int     `xml:"viewCount,attr"`
	AddedAt              int64   `xml:"addedAt,attr"`
	UpdatedAt            int64   `xml:"updatedAt,attr"`
	Media                []Media `xml:"Media"`
}

type trackContainer struct {
	XMLName xml.Name `xml:"MediaContainer"`
	containerInfo
	Tracks []Track `xml:"Track" validate:"dive"`
}

func (c trackContainer) items() []Track { return c.Tracks }

// Show is a TV series, listed as a Directory in show sections
type Show struct {
	RatingKey       string `xml:"ratingKey,attr" validate:"required"`
	Key             string `xml:"key,attr"`
	GUID            string `xml:"guid,attr"`
	Type            string `xml:"type,attr"`
	Title           string `xml:"title,attr" validate:"required"`
	TitleSort       string `xml:"titleSort,attr"`
	Studio          string `xml:"studio,attr"`
	ContentRating   string `xml:"contentRating,attr"`
	Summary         string `xml:"summary,attr"`
	Year            int    `xml:"year,attr"`
	Thumb           string `xml:"thumb,attr"`
	ChildCount      int    `xml:"childCount,attr"`
	LeafCount       int    `xml:"leafCount,attr"`
	ViewedLeafCount int    `xml:"viewedLeafCount,attr"`
	AddedAt         int64  `xml:"addedAt,attr"`
	UpdatedAt       int64  `xml:"updatedAt,attr"`
	Genres          []Tag  `xml:"Genre"`
}

type showContainer struct {
	XMLName xml.Name `xml:"MediaContainer"`
	containerInfo
	Shows []Show `xml:"Directory" validate:"dive"`
}

func (c showContainer) items() []Show { return c.Shows }

// Season groups the episodes of a show. The "All episodes" pseudo-entry
// Plex appends to a show's children has no ratingKey.
type Season struct {
	RatingKey       string `xml:"ratingKey,attr"`
	Key             string `xml:"key,attr"`
	ParentRatingKey string `xml:"parentRatingKey,attr"`
	Type            string `xml:"type,attr"`
	Title           string `xml:"title,attr" validate:"required"`
	ParentTitle     string `xml:"parentTitle,attr"`
	Index           int    `xml:"index,attr"`
	LeafCount       int    `xml:"leafCount,attr"`
	ViewedLeafCount int    `xml:"viewedLeafCount,attr"`
	AddedAt         int64  `xml:"addedAt,attr"`
}

type seasonContainer struct {
	XMLName xml.Name `xml:"MediaContainer"`
	containerInfo
	Seasons []Season `xml:"Directory" validate:"dive"`
}

func (c seasonContainer) items() []Season { return c.Seasons }
