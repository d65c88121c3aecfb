// Package scanner turns hdb expression source text into a stream of
// tokens for the compiler's Pratt parser.
package scanner

// TokenKind identifies the lexical category of a Token.
type TokenKind int

// Punctuation tokens.
const (
	LeftParen TokenKind = iota
	RightParen
	LeftBrace
	RightBrace
	LeftBracket
	RightBracket
	Comma
	Period
	Minus
	Plus
	Semicolon
	Colon
	ForwardSlash
	Backslash
	Asterisk
	Bang
	NotEqual
	Equals
	LessThan
	LessEqual
	GreaterThan
	GreaterEqual
	QuestionMark
	Circumflex
	VerticalBar
	Percent
	Ampersand
)

// Literal and structural tokens.
const (
	Identifier TokenKind = iota + 100
	EnclosedIdentifier
	String
	Number
	Error
	Eof
)

// Reserved-word tokens (SQL-92 keyword set).
const (
	KWTrue TokenKind = iota + 200
	KWFalse
	KWNull
	KWAbsolute
	KWAction
	KWAdd
	KWAfter
	KWAll
	KWAllocate
	KWAlter
	KWAnd
	KWAny
	KWAre
	KWArray
	KWAs
	KWAsc
	KWAssertion
	KWAt
	KWAuthorization
	KWBefore
	KWBegin
	KWBetween
	KWBinary
	KWBit
	KWBlob
	KWBoolean
	KWBoth
	KWBreadth
	KWBy
	KWCall
	KWCascade
	KWCascaded
	KWCase
	KWCast
	KWCatalog
	KWChar
	KWCharacter
	KWCheck
	KWClob
	KWClose
	KWCollate
	KWCollation
	KWColumn
	KWCommit
	KWCondition
	KWConnect
	KWConnection
	KWConstraint
	KWConstraints
	KWConstructor
	KWContinue
	KWCorresponding
	KWCreate
	KWCross
	KWCube
	KWCurrent
	KWCurrentDate
	KWCurrentDefaultTransformGroup
	KWCurrentPath
	KWCurrentRole
	KWCurrentTime
	KWCurrentTimestamp
	KWCurrentTransformGroupForType
	KWCurrentUser
	KWCursor
	KWCycle
	KWData
	KWDate
	KWDay
	KWDeallocate
	KWDec
	KWDecimal
	KWDeclare
	KWDefault
	KWDeferrable
	KWDeferred
	KWDelete
	KWDepth
	KWDeref
	KWDesc
	KWDescribe
	KWDescriptor
	KWDeterministic
	KWDiagnostics
	KWDisconnect
	KWDistinct
	KWDo
	KWDomain
	KWDouble
	KWDrop
	KWDynamic
	KWEach
	KWElse
	KWElseif
	KWEnd
	KWEndExec
	KWEqualsKeyword
	KWEscape
	KWExcept
	KWException
	KWExec
	KWExecute
	KWExists
	KWExit
	KWExternal
	KWFetch
	KWFirst
	KWFloat
	KWFor
	KWForeign
	KWFound
	KWFree
	KWFrom
	KWFull
	KWFunction
	KWGeneral
	KWGet
	KWGlobal
	KWGo
	KWGoto
	KWGrant
	KWGroup
	KWGrouping
	KWHandle
	KWHaving
	KWHold
	KWHour
	KWIdentity
	KWIf
	KWImmediate
	KWIn
	KWIndicator
	KWInitially
	KWInner
	KWInout
	KWInput
	KWInsert
	KWInt
	KWInteger
	KWIntersect
	KWInterval
	KWInto
	KWIs
	KWIsolation
	KWJoin
	KWKey
	KWLanguage
	KWLarge
	KWLast
	KWLateral
	KWLeading
	KWLeave
	KWLeft
	KWLevel
	KWLike
	KWLocal
	KWLocaltime
	KWLocaltimestamp
	KWLocator
	KWLoop
	KWMap
	KWMatch
	KWMethod
	KWMinute
	KWModifies
	KWModule
	KWMonth
	KWNames
	KWNational
	KWNatural
	KWNchar
	KWNclob
	KWNesting
	KWNew
	KWNext
	KWNo
	KWNone
	KWNot
	KWNumeric
	KWObject
	KWOf
	KWOld
	KWOn
	KWOnly
	KWOpen
	KWOption
	KWOr
	KWOrder
	KWOrdinality
	KWOut
	KWOuter
	KWOutput
	KWOverlaps
	KWPad
	KWParameter
	KWPartial
	KWPath
	KWPrecision
	KWPrepare
	KWPreserve
	KWPrimary
	KWPrior
	KWPrivileges
	KWProcedure
	KWPublic
	KWRead
	KWReads
	KWReal
	KWRecursive
	KWRedo
	KWRef
	KWReferences
	KWReferencing
	KWRelative
	KWRelease
	KWRepeat
	KWResignal
	KWRestrict
	KWResult
	KWReturn
	KWReturns
	KWRevoke
	KWRight
	KWRole
	KWRollback
	KWRollup
	KWRoutine
	KWRow
	KWRows
	KWSavepoint
	KWSchema
	KWScroll
	KWSearch
	KWSecond
	KWSection
	KWSelect
	KWSession
	KWSessionUser
	KWSet
	KWSets
	KWSignal
	KWSimilar
	KWSize
	KWSmallint
	KWSome
	KWSpace
	KWSpecific
	KWSpecifictype
	KWSql
	KWSqlexception
	KWSqlstate
	KWSqlwarning
	KWStart
	KWState
	KWStatic
	KWSystemUser
	KWTable
	KWTemporary
	KWThen
	KWTime
	KWTimestamp
	KWTimezoneHour
	KWTimezoneMinute
	KWTo
	KWTrailing
	KWTransaction
	KWTranslation
	KWTreat
	KWTrigger
	KWUnder
	KWUndo
	KWUnion
	KWUnique
	KWUnknown
	KWUnnest
	KWUntil
	KWUpdate
	KWUsage
	KWUser
	KWUsing
	KWValue
	KWValues
	KWVarchar
	KWVarying
	KWView
	KWWhen
	KWWhenever
	KWWhere
	KWWhile
	KWWith
	KWWithout
	KWWork
	KWWrite
	KWYear
	KWZone
)

// reservedWords maps lowercase keyword spellings to their token kind.
// Enclosed identifiers (back-tick or double-quote delimited) never consult
// this table: per spec, enclosed identifiers are never keywords.
var reservedWords = map[string]TokenKind{
	"absolute": KWAbsolute, "action": KWAction, "add": KWAdd, "after": KWAfter,
	"all": KWAll, "allocate": KWAllocate, "alter": KWAlter, "and": KWAnd,
	"any": KWAny, "are": KWAre, "array": KWArray, "as": KWAs, "asc": KWAsc,
	"assertion": KWAssertion, "at": KWAt, "authorization": KWAuthorization,
	"before": KWBefore, "begin": KWBegin, "between": KWBetween, "binary": KWBinary,
	"bit": KWBit, "blob": KWBlob, "boolean": KWBoolean, "both": KWBoth,
	"breadth": KWBreadth, "by": KWBy, "call": KWCall, "cascade": KWCascade,
	"cascaded": KWCascaded, "case": KWCase, "cast": KWCast, "catalog": KWCatalog,
	"char": KWChar, "character": KWCharacter, "check": KWCheck, "clob": KWClob,
	"close": KWClose, "collate": KWCollate, "collation": KWCollation,
	"column": KWColumn, "commit": KWCommit, "condition": KWCondition,
	"connect": KWConnect, "connection": KWConnection, "constraint": KWConstraint,
	"constraints": KWConstraints, "constructor": KWConstructor,
	"continue": KWContinue, "corresponding": KWCorresponding, "create": KWCreate,
	"cross": KWCross, "cube": KWCube, "current": KWCurrent,
	"current_date": KWCurrentDate,
	"current_default_transform_group": KWCurrentDefaultTransformGroup,
	"current_path":                    KWCurrentPath,
	"current_role":                    KWCurrentRole,
	"current_time":                    KWCurrentTime,
	"current_timestamp":               KWCurrentTimestamp,
	"current_transform_group_for_type": KWCurrentTransformGroupForType,
	"current_user":                     KWCurrentUser,
	"cursor": KWCursor, "cycle": KWCycle, "data": KWData, "date": KWDate,
	"day": KWDay, "deallocate": KWDeallocate, "dec": KWDec, "decimal": KWDecimal,
	"declare": KWDeclare, "default": KWDefault, "deferrable": KWDeferrable,
	"deferred": KWDeferred, "delete": KWDelete, "depth": KWDepth, "deref": KWDeref,
	"desc": KWDesc, "describe": KWDescribe, "descriptor": KWDescriptor,
	"deterministic": KWDeterministic, "diagnostics": KWDiagnostics,
	"disconnect": KWDisconnect, "distinct": KWDistinct, "do": KWDo,
	"domain": KWDomain, "double": KWDouble, "drop": KWDrop, "dynamic": KWDynamic,
	"each": KWEach, "else": KWElse, "elseif": KWElseif, "end": KWEnd,
	"end_exec": KWEndExec, "equals_keyword": KWEqualsKeyword, "escape": KWEscape,
	"except": KWExcept, "exception": KWException, "exec": KWExec,
	"execute": KWExecute, "exists": KWExists, "exit": KWExit,
	"external": KWExternal, "false": KWFalse, "fetch": KWFetch, "first": KWFirst,
	"float": KWFloat, "for": KWFor, "foreign": KWForeign, "found": KWFound,
	"free": KWFree, "from": KWFrom, "full": KWFull, "function": KWFunction,
	"general": KWGeneral, "get": KWGet, "global": KWGlobal, "go": KWGo,
	"goto": KWGoto, "grant": KWGrant, "group": KWGroup, "grouping": KWGrouping,
	"handle": KWHandle, "having": KWHaving, "hold": KWHold, "hour": KWHour,
	"identity": KWIdentity, "if": KWIf, "immediate": KWImmediate, "in": KWIn,
	"indicator": KWIndicator, "initially": KWInitially, "inner": KWInner,
	"inout": KWInout, "input": KWInput, "insert": KWInsert, "int": KWInt,
	"integer": KWInteger, "intersect": KWIntersect, "interval": KWInterval,
	"into": KWInto, "is": KWIs, "isolation": KWIsolation, "join": KWJoin,
	"key": KWKey, "language": KWLanguage, "large": KWLarge, "last": KWLast,
	"lateral": KWLateral, "leading": KWLeading, "leave": KWLeave, "left": KWLeft,
	"level": KWLevel, "like": KWLike, "local": KWLocal,
	"localtime": KWLocaltime, "localtimestamp": KWLocaltimestamp,
	"locator": KWLocator, "loop": KWLoop, "map": KWMap, "match": KWMatch,
	"method": KWMethod, "minute": KWMinute, "modifies": KWModifies,
	"module": KWModule, "month": KWMonth, "names": KWNames,
	"national": KWNational, "natural": KWNatural, "nchar": KWNchar,
	"nclob": KWNclob, "nesting": KWNesting, "new": KWNew, "next": KWNext,
	"no": KWNo, "none": KWNone, "not": KWNot, "null": KWNull,
	"numeric": KWNumeric, "object": KWObject, "of": KWOf, "old": KWOld,
	"on": KWOn, "only": KWOnly, "open": KWOpen, "option": KWOption, "or": KWOr,
	"order": KWOrder, "ordinality": KWOrdinality, "out": KWOut,
	"outer": KWOuter, "output": KWOutput, "overlaps": KWOverlaps, "pad": KWPad,
	"parameter": KWParameter, "partial": KWPartial, "path": KWPath,
	"precision": KWPrecision, "prepare": KWPrepare, "preserve": KWPreserve,
	"primary": KWPrimary, "prior": KWPrior, "privileges": KWPrivileges,
	"procedure": KWProcedure, "public": KWPublic, "read": KWRead,
	"reads": KWReads, "real": KWReal, "recursive": KWRecursive, "redo": KWRedo,
	"ref": KWRef, "references": KWReferences, "referencing": KWReferencing,
	"relative": KWRelative, "release": KWRelease, "repeat": KWRepeat,
	"resignal": KWResignal, "restrict": KWRestrict, "result": KWResult,
	"return": KWReturn, "returns": KWReturns, "revoke": KWRevoke,
	"right": KWRight, "role": KWRole, "rollback": KWRollback, "rollup": KWRollup,
	"routine": KWRoutine, "row": KWRow, "rows": KWRows, "savepoint": KWSavepoint,
	"schema": KWSchema, "scroll": KWScroll, "search": KWSearch,
	"second": KWSecond, "section": KWSection, "select": KWSelect,
	"session": KWSession, "session_user": KWSessionUser, "set": KWSet,
	"sets": KWSets, "signal": KWSignal, "similar": KWSimilar, "size": KWSize,
	"smallint": KWSmallint, "some": KWSome, "space": KWSpace,
	"specific": KWSpecific, "specifictype": KWSpecifictype, "sql": KWSql,
	"sqlexception": KWSqlexception, "sqlstate": KWSqlstate,
	"sqlwarning": KWSqlwarning, "start": KWStart, "state": KWState,
	"static": KWStatic, "system_user": KWSystemUser, "table": KWTable,
	"temporary": KWTemporary, "then": KWThen, "time": KWTime,
	"timestamp": KWTimestamp, "timezone_hour": KWTimezoneHour,
	"timezone_minute": KWTimezoneMinute, "to": KWTo, "trailing": KWTrailing,
	"transaction": KWTransaction, "translation": KWTranslation,
	"treat": KWTreat, "trigger": KWTrigger, "true": KWTrue, "under": KWUnder,
	"undo": KWUndo, "union": KWUnion, "unique": KWUnique, "unknown": KWUnknown,
	"unnest": KWUnnest, "until": KWUntil, "update": KWUpdate, "usage": KWUsage,
	"user": KWUser, "using": KWUsing, "value": KWValue, "values": KWValues,
	"varchar": KWVarchar, "varying": KWVarying, "view": KWView, "when": KWWhen,
	"whenever": KWWhenever, "where": KWWhere, "while": KWWhile, "with": KWWith,
	"without": KWWithout, "work": KWWork, "write": KWWrite, "year": KWYear,
	"zone": KWZone,
}

// Token is one lexeme produced by the Scanner: its kind, the exact source
// slice it spans, and the source line it started on.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Line   int
}
