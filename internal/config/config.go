package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Numerology/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Numerology"
	AppID             = "com.github.tartampluch.go-numerology"
	KeyringService    = "com.github.tartampluch.go-numerology"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	MetricsNamespace  = "numerology"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Commands, Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	CmdRoot       = "go-numerology"
	CmdProfile    = "profile"
	CmdReport     = "report"
	CmdCompat     = "compat"
	CmdSearch     = "search"
	CmdDictionary = "dictionary"
	CmdCalendar   = "calendar"
	CmdServe      = "serve"
	CmdVersion    = "version"

	FlagDebug       = "debug"
	FlagLang        = "lang"
	FlagPort        = "port"
	FlagName        = "name"
	FlagBirthdate   = "birthdate"
	FlagGender      = "gender"
	FlagFold        = "fold"
	FlagFrom        = "from"
	FlagTo          = "to"
	FlagName2       = "name2"
	FlagBirthdate2  = "birthdate2"
	FlagStableName  = "stable-name"
	FlagStableDate  = "stable-birthdate"
	FlagMode        = "mode"
	FlagLanguages   = "languages"
	FlagHarmony     = "harmony"
	FlagHara        = "hara"
	FlagCoherence   = "coherence"
	FlagMomen       = "momen"
	FlagSuggestion  = "suggestion"
	FlagOrigin      = "origin"
	FlagSource      = "source"
	FlagOutput      = "output"
	FlagMonthFirst  = "month-first"
	FlagPosition    = "position"
	FlagBuckets     = "buckets"
	FlagLimit       = "limit"
	FlagJSON        = "json"
	FlagDescDebug   = "Enable debug logging"
	FlagDescLang    = "Language for narratives (id, en, fr, es, zh, hi, ar)"
	FlagDescPort    = "HTTP port for the serve command"
	FlagDescName    = "Full name"
	FlagDescDate    = "Birth date (most common layouts accepted)"
	FlagDescGender  = "Gender (Male or Female)"
	FlagDescFold    = "Transliterate accented and non-Latin letters before normalizing"
	FlagDescFrom    = "First age shown in the report"
	FlagDescTo      = "Last age shown in the report"
	FlagDescMode    = "Number of words to insert (1 or 2)"
	FlagDescLangs   = "Word corpora to draw candidates from"
	FlagDescHarmony = "Minimum harmony score"
	FlagDescHara    = "Hara target (a number, or \"all\" for 1,2,3,4,6)"
	FlagDescCoh     = "Minimum coherence percentage"
	FlagDescMomen   = "Minimum momen sukses percentage"
	FlagDescSugg    = "Required grafologi suggestion number (0 disables)"
	FlagDescOrigin  = "Restrict dictionary hits to one origin"
	FlagDescSource  = "vCard file path or http(s) URL"
	FlagDescOutput  = "Write the calendar to this file instead of stdout"
	FlagDescMonth   = "Read ambiguous dates as month/day"
	FlagDescName2   = "Full name of the second person"
	FlagDescDate2   = "Birth date of the second person"
	FlagDescStable  = "Full name of the partner whose name stays as is"
	FlagDescStDate  = "Birth date of the partner whose name stays as is"
	FlagDescPos     = "Place of the person being renamed in the pair (first or second)"
	FlagDescBuckets = "Try the Expression buckets recommended for the renamed person first"
	FlagDescLimit   = "Maximum number of entries shown"
	FlagDescJSON    = "Print JSON instead of a table"

	CmdDescRoot       = "Numerology profiles, yearly reports, compatibility and name search"
	CmdDescProfile    = "Derive the numerology profile of a person"
	CmdDescReport     = "Print the yearly projection of a person"
	CmdDescCompat     = "Score the compatibility of two people"
	CmdDescSearch     = "Search name variants that harmonize with a partner"
	CmdDescDictionary = "Look up names and their meanings"
	CmdDescCalendar   = "Export a personal-year calendar from a vCard address book"
	CmdDescServe      = "Serve the HTTP API and the calendar feed"
	CmdDescVersion    = "Print the version"
	CmdUseDictionary  = "dictionary [query]"

	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyMatchPrefix  = "match_"        // Followed by "<timeA>_<timeB>"
	TKeyMatchGeneric = "match_generic" // Requires TimeA, TimeB, Percentage
	TKeyMatchUnknown = "match_unknown"
	TKeySuggestion   = "suggestion_"       // Followed by the grafologi value 1..10
	TKeyEvtSummary   = "event_summary"     // Requires Name, PersonalYear, Essence
	TKeyEvtDesc      = "event_description" // Requires Age, Cycle, Pinnacle, Challenge, CalYear
	TKeyCalendarName = "calendar_name"
)

// SupportedLanguages lists the narrative languages (ISO 639-1).
var SupportedLanguages = []string{"id", "en", "fr", "es", "zh", "hi", "ar"}

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeWeb     = "web"
	SourceModeLocal   = "local"
	DefaultPort       = "18080"
	DefaultLanguage   = "en"
	LogFormatJSON     = "json"
	LogFormatText     = "text"
	DefaultLeapYear   = 2000
	UIDSalt           = "go-numerology-v1-"
	GenderMale        = "Male"
	GenderFemale      = "Female"
	HaraAll           = "all"
	ReportYears       = 100
	DefaultReportTo   = 99
	DictionaryLimit   = 50
	ProfileCacheTTL   = 10 * time.Minute
	ProfileCacheSweep = 20 * time.Minute
	DefaultRefresh    = time.Hour
	PositionFirst     = "first"
	PositionSecond    = "second"
	DefaultCorpus     = "id"
	FormatProfileKey  = "%s|%s|%s|%d"
)

// Search defaults used when a threshold is missing or unparsable.
const (
	DefaultHarmonyTarget   = 70.0
	DefaultCoherenceTarget = 70
	DefaultMomenTarget     = 80
	MaxSearchResults       = 20
	SearchChunkSize        = 25
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Numerology//Engine//EN"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "gonumerology"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropDescription = "DESCRIPTION"
	PropCategories  = "CATEGORIES"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardBDAY   = "BDAY"
	VCardFN     = "FN"
	VCardN      = "N"
	VCardGender = "GENDER"

	ICalCategory       = "NUMEROLOGY"
	DefaultICalRefresh = 12 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatLong      = "2 January 2006"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	MinPort = 1
	MaxPort = 65535

	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%d@%s"
	FormatPercent   = "%d%%"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 60 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	SearchTimeout       = 45 * time.Second
	RetryAfterSeconds   = "10"
	MaxHTTPResponseSize = 64 * 1024 * 1024
	MaxRequestBodySize  = 1 << 20
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	AddrSeparator       = ":"
	CORSMaxAge          = 300

	RouteHealth     = "/healthz"
	RouteCalendar   = "/calendar.ics"
	RouteMetrics    = "/metrics"
	RouteAPI        = "/api/v1"
	RouteProfile    = "/profile"
	RouteReport     = "/report"
	RouteCompat     = "/compat"
	RouteSearch     = "/search"
	RouteDictionary = "/dictionary"
	RoutePeople     = "/people"
	RouteUnmatched  = "unmatched"

	QueryText   = "q"
	QueryOrigin = "origin"
	QueryLimit  = "limit"
	QuerySort   = "sort"
	SortByDate  = "date"
	SortByName  = "name"
	SortByAge   = "age"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"
	HeaderAllow           = "Allow"

	AllowedMethods = "GET, HEAD"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLocalPathEmpty  = "configuration error: local path is empty"
	ErrWebURLEmpty     = "configuration error: web URL is empty"
	ErrFetcherMissing  = "internal error: network fetcher is not initialized"
	ErrModeUnsupport   = "configuration error: unsupported source mode"
	ErrSettingsLoad    = "failed to load settings"
	ErrServerStartup   = "server startup failed"
	ErrServerShutdown  = "server shutdown failed"
	ErrPortRequired    = "server port is required"
	ErrPortRange       = "port must be a number between 1 and 65535"
	ErrInvalidURL      = "invalid URL structure"
	ErrProtocol        = "unsupported protocol scheme (http/https only)"
	ErrVCardParse      = "failed to parse vCard stream"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrDateParse       = "unable to parse date"
	ErrGender          = "gender must be Male or Female"
	ErrLogFile         = "failed to open log file"
	ErrCacheDir        = "could not determine user cache dir"
	ErrCreateDir       = "could not create app cache dir"
	ErrAppFailed       = "application failed unexpectedly"
	ErrWriteResp       = "failed to write response body"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
	ErrCorpusLoad      = "failed to load embedded corpus"
	ErrNoCandidates    = "no candidate words available for the selected language(s)"
	ErrSearchRunning   = "search session is already running"
	ErrSearchMode      = "search mode must be 1 or 2"
	ErrRequestDecode   = "malformed request body"
	ErrRequestInvalid  = "request validation failed"
	ErrKeyringRead     = "failed to read password from keyring"
	ErrCalendarRefresh = "calendar refresh failed"
	ErrWriteOutput     = "failed to write output"
	ErrFetchRequest    = "failed to create request"
	ErrFetchNetwork    = "network error during fetch"
	ErrFetchStatus     = "server returned unexpected status"
	ErrUnknownOrigin   = "unknown dictionary origin"
	ErrSearchPosition  = "search position must be first or second"
	ErrAgeRange        = "age range must satisfy 0 <= from <= to <= 99"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgInternalErr  = "Internal Server Error"
	HTTPMsgNotFound     = "Not Found"
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPStatusOK        = "ok"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackSummary  = "%s: Personal Year %d, Essence %d"
	FallbackName     = "Unknown"
	FallbackCalendar = "Numerology Report"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	MsgImportStarted  = "People import started"
	MsgImportDone     = "People import finished"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedDate    = "Skipping invalid date format"
	MsgGenSuccess     = "Calendar generation successful"
	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped gracefully"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Calendar cache updated"
	MsgRefreshStart   = "Calendar refresh worker started"
	MsgRefreshStop    = "Calendar refresh worker stopping"
	MsgRefreshDone    = "Calendar refreshed"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgPassFail       = "Password retrieval failed (might be empty)"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgSearchStart    = "Name search started"
	MsgSearchChunk    = "Name search chunk processed"
	MsgSearchDone     = "Name search finished"
	MsgSearchCanceled = "Name search cancelled"
	MsgProfileCached  = "Profile served from cache"
	MsgRequest        = "Request handled"
	MsgCorpusLoaded   = "Word list loaded"
	MsgFetchStart     = "Initiating vCard download"
	MsgFetchStatus    = "Server returned error status"
	MsgFetchOK        = "vCards downloading"
)

// -----------------------------------------------------------------------------
// CLI Output Labels
// -----------------------------------------------------------------------------

const (
	LabelName          = "Name"
	LabelBirthDate     = "Birth date"
	LabelGender        = "Gender"
	LabelExpression    = "Expression"
	LabelTime          = "Time (life path)"
	LabelHeart         = "Heart desire"
	LabelPersonality   = "Personality"
	LabelBirth         = "Birth"
	LabelUltimate      = "Ultimate"
	LabelHabit         = "Habit"
	LabelPlanes        = "Planes (P/M/E/I)"
	LabelPlanExp       = "Plan of expression"
	LabelIntensity     = "Point of intensification"
	LabelHara          = "Hara"
	LabelSynchronize   = "Synchronize"
	LabelCoherence     = "Coherence"
	LabelSynergize     = "Synergize"
	LabelProductive    = "Productive"
	LabelMomen         = "Momen sukses"
	LabelGrafologi     = "Grafologi"
	LabelMaturity      = "Maturity"
	LabelBalance       = "Balance"
	LabelChallenges    = "Challenges"
	LabelPersonalYear  = "Personal year"
	LabelLifeLine      = "Life line"
	LabelSuggestions   = "Suggestions"
	LabelHarmony       = "Harmony"
	LabelMatch         = "Match"
	LabelBestYears     = "Best years"
	LabelHardYears     = "Hardest years"
	LabelChecked       = "Checked %d variants over %d words, %d result(s)"
	LabelIncomplete    = "Search interrupted, partial results"
	LabelCalendarSaved = "Calendar written to %s (%d events)"

	HeaderReport     = "YEAR\tAGE\tCHAL\tCYCLE\tPINN\tCAL\tPY\tESS\tSCORE"
	HeaderTerms      = "TERM\tA\tB\tVALUE\tWEIGHT\tWEIGHTED"
	HeaderSearch     = "NAME\tHARMONY\tHARA\tSYNC\tCOH\tMOMEN\tGRAF\tSUGG"
	HeaderDictionary = "NAME\tORIGIN\tMEANING"
	HeaderPeople     = "%s, %s"

	TabMinWidth = 0
	TabWidth    = 4
	TabPadding  = 2
	TabPadChar  = ' '
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyMode      = "mode"
	LogKeyInterval  = "interval"
	LogKeyUser      = "user"
	LogKeyTotal     = "total_cards"
	LogKeyFound     = "people_found"
	LogKeyEvents    = "events"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeyDuration  = "duration_ms"
	LogKeySession   = "session"
	LogKeyWords     = "words"
	LogKeyChecked   = "checked"
	LogKeyResults   = "results"
	LogKeyMethod    = "method"
	LogKeyPath      = "path"
	LogKeyLength    = "content_length"
	LogKeyAddr      = "addr"
	LogKeyRequestID = "request_id"

	LogKeyBuild   = "build"
	LogKeyCommit  = "commit"
	LogKeyDate    = "date"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompEngine  = "engine"
	CompServer  = "server"
	CompFetcher = "fetcher"
	CompWorker  = "worker"
	CompMain    = "main"
	CompI18n    = "i18n"
	CompSearch  = "search"
	CompCorpus  = "corpus"
)
