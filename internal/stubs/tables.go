package stubs

// Config holds the immutable classification tables. It is injected at
// construction (builder and renderer own one) rather than living as
// package-level mutable state.
type Config struct {
	platform map[string]bool
	icons    map[string]bool
	library  map[string]bool
}

// NewConfig builds a Config from explicit tables. Intended for tests;
// production code uses DefaultConfig.
func NewConfig(platform, icons, library []string) Config {
	return Config{
		platform: toSet(platform),
		icons:    toSet(icons),
		library:  toSet(library),
	}
}

// DefaultConfig returns the standard tables: React runtime primitives,
// the lucide icon set, and the exports of the shimmed runtime libraries
// (animation, routing, forms, HTTP, sockets).
func DefaultConfig() Config {
	return Config{
		platform: toSet(platformNames),
		icons:    toSet(iconNames),
		library:  toSet(libraryExports),
	}
}

// Classify maps a local name to its kind. First match wins, in the fixed
// order platform → icon → library → unknown.
func (c Config) Classify(name string) Kind {
	switch {
	case c.platform[name]:
		return KindPlatform
	case c.icons[name]:
		return KindIcon
	case c.library[name]:
		return KindLibrary
	default:
		return KindUnknown
	}
}

// IsIcon reports icon-table membership, used by the document builder to
// decide which names route through the icon proxy.
func (c Config) IsIcon(name string) bool {
	return c.icons[name]
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// platformNames are runtime primitives the sandbox always provides; they
// are never stubbed and never shimmed.
var platformNames = []string{
	"React", "ReactDOM", "Component", "PureComponent", "Fragment",
	"StrictMode", "Suspense", "Children",
	"createElement", "cloneElement", "createContext", "createRoot",
	"forwardRef", "memo", "lazy",
	"useState", "useEffect", "useLayoutEffect", "useMemo", "useCallback",
	"useRef", "useContext", "useReducer", "useId", "useTransition",
	"useDeferredValue", "useSyncExternalStore",
}

// libraryExports is the allow-list of names the in-document runtime shims
// provide: animation, routing, forms, HTTP, and sockets.
var libraryExports = []string{
	// animation (framer-motion)
	"motion", "AnimatePresence", "useAnimation", "useScroll",
	"useTransform", "useInView", "useMotionValue", "useSpring",
	// routing (react-router-dom)
	"BrowserRouter", "HashRouter", "MemoryRouter", "Routes", "Route",
	"Link", "NavLink", "Navigate", "Outlet",
	"useNavigate", "useLocation", "useParams", "useSearchParams",
	// forms (react-hook-form)
	"useForm", "Controller", "FormProvider", "useFormContext",
	// HTTP
	"axios",
	// sockets
	"io", "Socket",
}

// iconNames is the icon-name table. One shared icon-rendering proxy
// satisfies every member; unknown names fall back to a generic glyph
// inside the proxy, so this list only has to cover what generators
// actually emit.
var iconNames = []string{
	"Activity", "AlarmClock", "AlertCircle", "AlertTriangle", "AlignCenter",
	"Archive", "ArrowDown", "ArrowDownRight", "ArrowLeft", "ArrowRight",
	"ArrowUp", "ArrowUpRight", "Award",
	"BadgeCheck", "BarChart", "BarChart2", "BarChart3", "Battery", "Bell",
	"BellOff", "Bluetooth", "Bold", "Book", "BookOpen", "Bookmark", "Box",
	"Briefcase", "Building", "Building2",
	"Calculator", "Calendar", "Camera", "Check", "CheckCircle",
	"CheckCircle2", "CheckSquare", "ChevronDown", "ChevronLeft",
	"ChevronRight", "ChevronUp", "ChevronsLeft", "ChevronsRight", "Circle",
	"Clipboard", "Clock", "Cloud", "CloudRain", "Code", "Code2", "Coffee",
	"Cog", "Compass", "Copy", "CreditCard", "Crop", "Crown",
	"Database", "Delete", "DollarSign", "Download", "Droplet", "Droplets",
	"Edit", "Edit2", "Edit3", "ExternalLink", "Eye", "EyeOff",
	"Facebook", "File", "FileText", "Film", "Filter", "Flag", "Flame",
	"Folder", "FolderOpen",
	"Gauge", "Gift", "Github", "Globe", "Grid", "GripVertical",
	"Hash", "Headphones", "Heart", "HelpCircle", "Home",
	"Image", "Inbox", "Info", "Instagram",
	"Key", "Keyboard",
	"Landmark", "Laptop", "Layers", "Layout", "LayoutDashboard",
	"LayoutGrid", "LifeBuoy", "Lightbulb", "LineChart", "Link", "Link2",
	"Linkedin", "List", "Loader", "Loader2", "Lock", "LogIn", "LogOut",
	"Mail", "Map", "MapPin", "Maximize", "Maximize2", "Menu",
	"MessageCircle", "MessageSquare", "Mic", "MicOff", "Minimize", "Minus",
	"Monitor", "Moon", "MoreHorizontal", "MoreVertical", "MousePointer",
	"Move", "Music",
	"Navigation", "Newspaper",
	"Package", "Palette", "Paperclip", "Pause", "PauseCircle", "Pen",
	"Pencil", "Percent", "Phone", "PieChart", "Pin", "Play", "PlayCircle",
	"Plus", "PlusCircle", "Power", "Printer",
	"Quote",
	"Radio", "RefreshCcw", "RefreshCw", "Repeat", "Reply", "Rocket",
	"RotateCcw", "RotateCw", "Rss",
	"Save", "Scissors", "Search", "Send", "Server", "Settings", "Share",
	"Share2", "Shield", "ShieldCheck", "ShoppingBag", "ShoppingCart",
	"Shuffle", "Sidebar", "SkipBack", "SkipForward", "Slack", "Sliders",
	"Smartphone", "Smile", "Sparkles", "Speaker", "Square", "Star",
	"Sun", "Sunrise", "Sunset",
	"Table", "Tablet", "Tag", "Target", "Terminal", "ThumbsDown",
	"ThumbsUp", "Ticket", "Timer", "ToggleLeft", "ToggleRight", "Trash",
	"Trash2", "TrendingDown", "TrendingUp", "Triangle", "Trophy", "Truck",
	"Twitter", "Type",
	"Umbrella", "Underline", "Undo", "Unlock", "Upload", "User",
	"UserCheck", "UserMinus", "UserPlus", "Users",
	"Video", "Voicemail", "Volume", "Volume1", "Volume2", "VolumeX",
	"Wallet", "Wand2", "Watch", "Waves", "Wifi", "Wind", "Wrench",
	"X", "XCircle",
	"Youtube",
	"Zap", "ZoomIn", "ZoomOut",
}
