package detect

// COCO class indices the application cares about by default. The pipeline
// itself treats labels as opaque; filtering happens here in the detector.
const (
	ClassTrafficLight = 9
	ClassStopSign     = 11
)

// DefaultClasses restricts detection to signal and sign categories.
var DefaultClasses = []int{ClassTrafficLight, ClassStopSign}

// cocoNames maps COCO class indices to labels, in dataset order.
var cocoNames = []string{
	"person", "bicycle", "car", "motorcycle", "airplane", "bus", "train",
	"truck", "boat", "traffic light", "fire hydrant", "stop sign",
	"parking meter", "bench", "bird", "cat", "dog", "horse", "sheep", "cow",
	"elephant", "bear", "zebra", "giraffe", "backpack", "umbrella", "handbag",
	"tie", "suitcase", "frisbee", "skis", "snowboard", "sports ball", "kite",
	"baseball bat", "baseball glove", "skateboard", "surfboard",
	"tennis racket", "bottle", "wine glass", "cup", "fork", "knife", "spoon",
	"bowl", "banana", "apple", "sandwich", "orange", "broccoli", "carrot",
	"hot dog", "pizza", "donut", "cake", "chair", "couch", "potted plant",
	"bed", "dining table", "toilet", "tv", "laptop", "mouse", "remote",
	"keyboard", "cell phone", "microwave", "oven", "toaster", "sink",
	"refrigerator", "book", "clock", "vase", "scissors", "teddy bear",
	"hair drier", "toothbrush",
}

// ClassName returns the COCO label for id, or a numeric fallback.
func ClassName(id int) string {
	if id >= 0 && id < len(cocoNames) {
		return cocoNames[id]
	}
	return "unknown"
}
