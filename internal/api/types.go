package api

// Category is the fixed seed category enumeration used by the backend.
// Codes are 0-indexed on the wire; -1 is a reserved sentinel meaning
// "no category filter".
type Category int

const (
	CategoryAll Category = iota - 1
	CategoryVideo
	CategoryMusic
	CategoryBook
	CategoryImage
	CategoryOther
)

var categoryLabels = map[Category]string{
	CategoryAll:   "All",
	CategoryVideo: "Video",
	CategoryMusic: "Music",
	CategoryBook:  "Books",
	CategoryImage: "Images",
	CategoryOther: "Other",
}

// Label returns the display label for the category. Codes outside the
// known enumeration render as "Unknown" rather than failing.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return "Unknown"
}

// Categories returns the assignable categories, in wire order. The All
// sentinel is excluded; it is a filter value, not an item category.
func Categories() []Category {
	return []Category{CategoryVideo, CategoryMusic, CategoryBook, CategoryImage, CategoryOther}
}

// SeedItem is one shareable item in the seed list.
type SeedItem struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	CategoryID  Category `json:"categoryId"`
	Creator     string   `json:"creator"`
	CreatedTime string   `json:"createdTime"`
	SeederCount int      `json:"seederCount"`
	FileURL     string   `json:"fileUrl"`
}

// Post is one community board entry.
type Post struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	CreatedAt string `json:"createdAt"`
}

// UserInfo identifies the authenticated user.
type UserInfo struct {
	UserID   int64  `json:"userId"`
	UserName string `json:"userName"`
}

// Captcha is a one-shot challenge: a base64 PNG and the correlation id
// that must accompany the next (and only the next) auth submit.
type Captcha struct {
	Img  string `json:"img"`
	UUID string `json:"uuid"`
}
