package profile

// Enum type names referenced by field profiles
const (
	TypeFile               = "file"
	TypeMesgNum            = "mesgNum"
	TypeManufacturer       = "manufacturer"
	TypeGarminProduct      = "garminProduct"
	TypeSport              = "sport"
	TypeSubSport           = "subSport"
	TypeEvent              = "event"
	TypeEventType          = "eventType"
	TypeTimerTrigger       = "timerTrigger"
	TypeActivity           = "activity"
	TypeLapTrigger         = "lapTrigger"
	TypeSessionTrigger     = "sessionTrigger"
	TypeGender             = "gender"
	TypeLanguage           = "language"
	TypeBatteryStatus      = "batteryStatus"
	TypeSourceType         = "sourceType"
	TypeAntplusDeviceType  = "antplusDeviceType"
	TypeBleDeviceType      = "bleDeviceType"
	TypeLocalDeviceType    = "localDeviceType"
	TypeHrZoneCalc         = "hrZoneCalc"
	TypePwrZoneCalc        = "pwrZoneCalc"
	TypeSetType            = "setType"
	TypeFitBaseType        = "fitBaseType"
	TypeDisplayMeasure     = "displayMeasure"
	TypeDisplayHeart       = "displayHeart"
	TypeDisplayPower       = "displayPower"
	TypeDisplayPosition    = "displayPosition"
	TypeTimeMode           = "timeMode"
	TypeDateMode           = "dateMode"
	TypeBacklightMode      = "backlightMode"
	TypeActivityType       = "activityType"
	TypeIntensity          = "intensity"
	TypeSwimStroke         = "swimStroke"
	TypeLengthType         = "lengthType"
	TypeDisplayOrientation = "displayOrientation"
	TypeSide               = "side"
	TypeFitBaseUnit        = "fitBaseUnit"
)

// Types maps an enum type name to its value names
var Types = map[string]map[int64]string{
	TypeBool: {0: "false", 1: "true"},
	TypeFile: {
		1: "device", 2: "settings", 3: "sport", 4: "activity", 5: "workout", 6: "course",
		7: "schedules", 9: "weight", 10: "totals", 11: "goals", 14: "bloodPressure",
		15: "monitoringA", 20: "activitySummary", 28: "monitoringDaily", 32: "monitoringB",
		34: "segment", 35: "segmentList", 40: "exdConfiguration", 0xF7: "mfgRangeMin",
		0xFE: "mfgRangeMax",
	},
	TypeMesgNum: {
		0: "fileId", 1: "capabilities", 2: "deviceSettings", 3: "userProfile", 4: "hrmProfile",
		5: "sdmProfile", 6: "bikeProfile", 7: "zonesTarget", 8: "hrZone", 9: "powerZone",
		10: "metZone", 12: "sport", 13: "trainingSettings", 15: "goal", 18: "session", 19: "lap",
		20: "record", 21: "event", 23: "deviceInfo", 26: "workout", 27: "workoutStep",
		28: "schedule", 30: "weightScale", 31: "course", 32: "coursePoint", 33: "totals",
		34: "activity", 35: "software", 37: "fileCapabilities", 38: "mesgCapabilities",
		39: "fieldCapabilities", 49: "fileCreator", 51: "bloodPressure", 53: "speedZone",
		55: "monitoring", 72: "trainingFile", 78: "hrv", 80: "antRx", 81: "antTx",
		82: "antChannelId", 101: "length", 103: "monitoringInfo", 105: "pad",
		106: "slaveDevice", 127: "connectivity", 128: "weatherConditions", 129: "weatherAlert",
		131: "cadenceZone", 132: "hr", 142: "segmentLap", 145: "memoGlob", 148: "segmentId",
		149: "segmentLeaderboardEntry", 150: "segmentPoint", 151: "segmentFile",
		158: "workoutSession", 159: "watchfaceSettings", 160: "gpsMetadata", 161: "cameraEvent",
		162: "timestampCorrelation", 164: "gyroscopeData", 165: "accelerometerData",
		167: "threeDSensorCalibration", 169: "videoFrame", 174: "obdiiData", 177: "nmeaSentence",
		178: "aviationAttitude", 184: "video", 185: "videoTitle", 186: "videoDescription",
		187: "videoClip", 188: "ohrSettings", 200: "exdScreenConfiguration",
		201: "exdDataFieldConfiguration", 202: "exdDataConceptConfiguration",
		206: "fieldDescription", 207: "developerDataId", 208: "magnetometerData",
		209: "barometerData", 210: "oneDSensorCalibration", 216: "timeInZone", 225: "set",
		227: "stressLevel", 258: "diveSettings", 259: "diveGas", 262: "diveAlarm",
		264: "exerciseTitle", 268: "diveSummary", 269: "spo2Data", 285: "jump",
		297: "respirationRate", 312: "split", 317: "climbPro", 370: "hrvStatusSummary",
		371: "hrvValue", 375: "deviceAuxBatteryInfo", 0xFF00: "mfgRangeMin",
		0xFFFE: "mfgRangeMax",
	},
	TypeManufacturer: {
		1: "garmin", 2: "garminFr405Antfs", 3: "zephyr", 4: "dayton", 5: "idt", 6: "srm",
		7: "quarq", 8: "ibike", 9: "saris", 10: "sparkHk", 11: "tanita", 12: "echowell",
		13: "dynastreamOem", 14: "nautilus", 15: "dynastream", 16: "timex", 17: "metrigear",
		18: "xelic", 19: "beurer", 20: "cardiosport", 21: "aAndD", 22: "hmm", 23: "suunto",
		24: "thitaElektronik", 25: "gpulse", 26: "cleanMobile", 27: "pedalBrain",
		28: "peaksware", 29: "saxonar", 30: "lemondFitness", 31: "dexcom", 32: "wahooFitness",
		33: "octaneFitness", 34: "archinoetics", 35: "theHurtBox", 36: "citizenSystems",
		37: "magellan", 38: "osynce", 39: "holux", 40: "concept2", 41: "shimano",
		42: "oneGiantLeap", 43: "aceSensor", 44: "brimBrothers", 45: "xplova",
		46: "perceptionDigital", 47: "bf1systems", 48: "pioneer", 49: "spantec",
		50: "metalogics", 51: "4iiiis", 52: "seikoEpson", 53: "seikoEpsonOem",
		54: "iforPowell", 55: "maxwellGuider", 56: "starTrac", 57: "breakaway",
		58: "alatechTechnologyLtd", 59: "mioTechnologyEurope", 60: "rotor", 61: "geonaute",
		62: "idBike", 63: "specialized", 64: "wtek", 65: "physicalEnterprises",
		66: "northPoleEngineering", 67: "bkool", 68: "cateye", 69: "stagesCycling",
		70: "sigmasport", 71: "tomtom", 72: "peripedal", 73: "wattbike", 76: "moxy",
		77: "ciclosport", 78: "powerbahn", 79: "acornProjectsAps", 80: "lifebeam",
		81: "bontrager", 82: "wellgo", 83: "scosche", 84: "magura", 85: "woodway",
		86: "elite", 87: "nielsenKellerman", 88: "dkCity", 89: "tacx",
		90: "directionTechnology", 91: "magtonic", 92: "1partcarbon",
		93: "insideRideTechnologies", 94: "soundOfMotion", 95: "stryd", 96: "icg",
		97: "miPulse", 98: "bsxAthletics", 99: "look", 100: "campagnoloSrl",
		255: "development", 257: "healthandlife", 258: "lezyne", 259: "scribeLabs",
		260: "zwift", 261: "watteam", 262: "recon", 263: "faveroElectronics", 264: "dynovelo",
		265: "strava", 266: "precor", 267: "bryton", 268: "sram", 269: "navman", 270: "cobi",
		271: "spivi", 272: "mioMagellan", 273: "evesports", 289: "hammerhead", 294: "coros",
		5759: "actigraphcorp",
	},
	TypeGarminProduct: {
		1: "hrm1", 2: "axh01", 3: "axb01", 4: "axb02", 5: "hrm2ss", 6: "dsiAlf02", 7: "hrm3ss",
		8: "hrmRunSingleByteProductId", 9: "bsm", 10: "bcm", 11: "axs01",
		12: "hrmTriSingleByteProductId", 13: "hrm4RunSingleByteProductId",
		14: "fr225SingleByteProductId", 15: "gen3BsmSingleByteProductId",
		16: "gen3BcmSingleByteProductId", 473: "fr301China", 474: "fr301Japan",
		475: "fr301Korea", 494: "fr301Taiwan", 717: "fr405", 782: "fr50", 987: "fr405Japan",
		988: "fr60", 1011: "dsiAlf01", 1018: "fr310xt", 1036: "edge500", 1124: "fr110",
		1169: "edge800", 1199: "edge500Taiwan", 1213: "edge500Japan", 1253: "chirp",
		1274: "fr110Japan", 1325: "edge200", 1328: "fr910xt", 1333: "edge800Taiwan",
		1334: "edge800Japan", 1341: "alf04", 1345: "fr610", 1360: "fr210Japan",
		1380: "vectorSs", 1381: "vectorCp", 1386: "edge800China", 1387: "edge500China",
		1405: "approachG10", 1410: "fr610Japan", 1422: "edge500Korea", 1436: "fr70",
		1446: "fr310xt4t", 1461: "amx", 1482: "fr10", 1497: "edge800Korea", 1499: "swim",
		1537: "fr910xtChina", 1551: "fenix", 1555: "edge200Taiwan", 1561: "edge510",
		1567: "edge810", 1570: "tempe", 1600: "fr910xtJapan", 1623: "fr620", 1632: "fr220",
		1664: "fr910xtKorea", 1688: "fr10Japan", 1721: "edge810Japan", 1735: "virbElite",
		1736: "edgeTouring", 1742: "edge510Japan", 1743: "hrmTri", 1752: "hrmRun",
		1765: "fr920xt", 1821: "edge510Asia", 1822: "edge810China", 1823: "edge810Taiwan",
		1836: "edge1000", 1837: "vivoFit", 1853: "virbRemote", 1885: "vivoKi", 1903: "fr15",
		1907: "vivoActive", 1918: "edge510Korea", 1928: "fr620Japan", 1929: "fr620China",
		1930: "fr220Japan", 1931: "fr220China", 1936: "approachS6", 1956: "vivoSmart",
		1967: "fenix2", 1988: "epix", 2050: "fenix3", 10007: "sdm4", 10014: "edgeRemote",
		20119: "trainingCenter", 65532: "androidAntplusPlugin", 65534: "connect",
	},
	TypeSport: {
		0: "generic", 1: "running", 2: "cycling", 3: "transition", 4: "fitnessEquipment",
		5: "swimming", 6: "basketball", 7: "soccer", 8: "tennis", 9: "americanFootball",
		10: "training", 11: "walking", 12: "crossCountrySkiing", 13: "alpineSkiing",
		14: "snowboarding", 15: "rowing", 16: "mountaineering", 17: "hiking", 18: "multisport",
		19: "paddling", 20: "flying", 21: "eBiking", 22: "motorcycling", 23: "boating",
		24: "driving", 25: "golf", 26: "hangGliding", 27: "horsebackRiding", 28: "hunting",
		29: "fishing", 30: "inlineSkating", 31: "rockClimbing", 32: "sailing",
		33: "iceSkating", 34: "skyDiving", 35: "snowshoeing", 36: "snowmobiling",
		37: "standUpPaddleboarding", 38: "surfing", 39: "wakeboarding", 40: "waterSkiing",
		41: "kayaking", 42: "rafting", 43: "windsurfing", 44: "kitesurfing", 45: "tactical",
		46: "jumpmaster", 47: "boxing", 48: "floorClimbing", 49: "baseball", 53: "diving",
		62: "hiit", 64: "racket", 65: "wheelchairPushWalk", 66: "wheelchairPushRun",
		67: "meditation", 69: "discGolf", 71: "cricket", 72: "rugby", 73: "hockey",
		74: "lacrosse", 75: "volleyball", 76: "waterTubing", 77: "wakesurfing",
		80: "mixedMartialArts", 82: "snorkeling", 83: "dance", 84: "jumpRope", 254: "all",
	},
	TypeSubSport: {
		0: "generic", 1: "treadmill", 2: "street", 3: "trail", 4: "track", 5: "spin",
		6: "indoorCycling", 7: "road", 8: "mountain", 9: "downhill", 10: "recumbent",
		11: "cyclocross", 12: "handCycling", 13: "trackCycling", 14: "indoorRowing",
		15: "elliptical", 16: "stairClimbing", 17: "lapSwimming", 18: "openWater",
		19: "flexibilityTraining", 20: "strengthTraining", 21: "warmUp", 22: "match",
		23: "exercise", 24: "challenge", 25: "indoorSkiing", 26: "cardioTraining",
		27: "indoorWalking", 28: "eBikeFitness", 29: "bmx", 30: "casualWalking",
		31: "speedWalking", 32: "bikeToRunTransition", 33: "runToBikeTransition",
		34: "swimToBikeTransition", 35: "atv", 36: "motocross", 37: "backcountry",
		38: "resort", 39: "rcDrone", 40: "wingsuit", 41: "whitewater", 42: "skateSkiing",
		43: "yoga", 44: "pilates", 45: "indoorRunning", 46: "gravelCycling",
		47: "eBikeMountain", 48: "commuting", 49: "mixedSurface", 50: "navigate",
		51: "trackMe", 52: "map", 53: "singleGasDiving", 54: "multiGasDiving",
		55: "gaugeDiving", 56: "apneaDiving", 57: "apneaHunting", 58: "virtualActivity",
		59: "obstacle", 62: "breathing", 65: "sailRace", 67: "ultra", 68: "indoorClimbing",
		69: "bouldering", 70: "hiit", 73: "amrap", 74: "emom", 75: "tabata",
		84: "pickleball", 85: "padel", 254: "all",
	},
	TypeEvent: {
		0: "timer", 3: "workout", 4: "workoutStep", 5: "powerDown", 6: "powerUp",
		7: "offCourse", 8: "session", 9: "lap", 10: "coursePoint", 11: "battery",
		12: "virtualPartnerPace", 13: "hrHighAlert", 14: "hrLowAlert", 15: "speedHighAlert",
		16: "speedLowAlert", 17: "cadHighAlert", 18: "cadLowAlert", 19: "powerHighAlert",
		20: "powerLowAlert", 21: "recoveryHr", 22: "batteryLow", 23: "timeDurationAlert",
		24: "distanceDurationAlert", 25: "calorieDurationAlert", 26: "activity",
		27: "fitnessEquipment", 28: "length", 32: "userMarker", 33: "sportPoint",
		36: "calibration", 42: "frontGearChange", 43: "rearGearChange",
		44: "riderPositionChange", 45: "elevHighAlert", 46: "elevLowAlert",
		47: "commTimeout", 75: "radarThreatAlert",
	},
	TypeEventType: {
		0: "start", 1: "stop", 2: "consecutiveDepreciated", 3: "marker", 4: "stopAll",
		5: "beginDepreciated", 6: "endDepreciated", 7: "endAllDepreciated",
		8: "stopDisable", 9: "stopDisableAll",
	},
	TypeTimerTrigger: {0: "manual", 1: "auto", 2: "fitnessEquipment"},
	TypeActivity:     {0: "manual", 1: "autoMultiSport"},
	TypeLapTrigger: {
		0: "manual", 1: "time", 2: "distance", 3: "positionStart", 4: "positionLap",
		5: "positionWaypoint", 6: "positionMarked", 7: "sessionEnd", 8: "fitnessEquipment",
	},
	TypeSessionTrigger: {0: "activityEnd", 1: "manual", 2: "autoMultiSport", 3: "fitnessEquipment"},
	TypeGender:         {0: "female", 1: "male"},
	TypeLanguage: {
		0: "english", 1: "french", 2: "italian", 3: "german", 4: "spanish", 5: "croatian",
		6: "czech", 7: "danish", 8: "dutch", 9: "finnish", 10: "greek", 11: "hungarian",
		12: "norwegian", 13: "polish", 14: "portuguese", 15: "slovakian", 16: "slovenian",
		17: "swedish", 18: "russian", 19: "turkish", 20: "latvian", 21: "ukrainian",
		22: "arabic", 23: "farsi", 24: "bulgarian", 25: "romanian", 26: "chinese",
		27: "japanese", 28: "korean", 29: "taiwanese", 30: "thai", 31: "hebrew",
		32: "brazilianPortuguese", 33: "indonesian", 34: "malaysian", 35: "vietnamese",
		36: "burmese", 37: "mongolian", 254: "custom",
	},
	TypeBatteryStatus: {1: "new", 2: "good", 3: "ok", 4: "low", 5: "critical", 6: "charging", 7: "unknown"},
	TypeSourceType: {
		0: "ant", 1: "antplus", 2: "bluetooth", 3: "bluetoothLowEnergy", 4: "wifi", 5: "local",
	},
	TypeAntplusDeviceType: {
		1: "antfs", 11: "bikePower", 12: "environmentSensorLegacy", 15: "multiSportSpeedDistance",
		16: "control", 17: "fitnessEquipment", 18: "bloodPressure", 19: "geocacheNode",
		20: "lightElectricVehicle", 25: "envSensor", 26: "racquet", 27: "controlHub",
		31: "muscleOxygen", 34: "shifting", 35: "bikeLightMain", 36: "bikeLightShared",
		38: "exd", 40: "bikeRadar", 46: "bikeAero", 119: "weightScale", 120: "heartRate",
		121: "bikeSpeedCadence", 122: "bikeCadence", 123: "bikeSpeed", 124: "strideSpeedDistance",
	},
	TypeBleDeviceType: {
		0: "connectedGps", 1: "heartRate", 2: "bikePower", 3: "bikeSpeedCadence", 4: "bikeSpeed",
		5: "bikeCadence", 6: "footpod", 7: "bikeTrainer",
	},
	TypeLocalDeviceType: {
		0: "gps", 1: "glonass", 2: "gpsGlonass", 3: "accelerometer", 4: "barometer",
		5: "temperature", 10: "whr", 12: "sensorHub",
	},
	TypeHrZoneCalc:  {0: "custom", 1: "percentMaxHr", 2: "percentHrr", 3: "percentLthr"},
	TypePwrZoneCalc: {0: "custom", 1: "percentFtp"},
	TypeSetType:     {0: "rest", 1: "active"},
	TypeFitBaseType: {
		0x00: "enum", 0x01: "sint8", 0x02: "uint8", 0x83: "sint16", 0x84: "uint16",
		0x85: "sint32", 0x86: "uint32", 0x07: "string", 0x88: "float32", 0x89: "float64",
		0x0A: "uint8z", 0x8B: "uint16z", 0x8C: "uint32z", 0x0D: "byte", 0x8E: "sint64",
		0x8F: "uint64", 0x90: "uint64z",
	},
	TypeDisplayMeasure:  {0: "metric", 1: "statute", 2: "nautical"},
	TypeDisplayHeart:    {0: "bpm", 1: "max", 2: "reserve"},
	TypeDisplayPower:    {0: "watts", 1: "percentFtp"},
	TypeDisplayPosition: {0: "degree", 1: "degreeMinute", 2: "degreeMinuteSecond", 3: "austrianGrid"},
	TypeTimeMode: {
		0: "hour12", 1: "hour24", 2: "military", 3: "hour12WithSeconds",
		4: "hour24WithSeconds", 5: "utc",
	},
	TypeDateMode: {0: "dayMonth", 1: "monthDay"},
	TypeBacklightMode: {
		0: "off", 1: "manual", 2: "keyAndMessages", 3: "autoBrightness",
		4: "smartNotifications", 5: "keyAndMessagesNight", 6: "keyAndMessagesAndSmartNotifications",
	},
	TypeActivityType: {
		0: "generic", 1: "running", 2: "cycling", 3: "transition", 4: "fitnessEquipment",
		5: "swimming", 6: "walking", 8: "sedentary", 254: "all",
	},
	TypeIntensity: {0: "active", 1: "rest", 2: "warmup", 3: "cooldown", 4: "recovery", 5: "interval", 6: "other"},
	TypeSwimStroke: {
		0: "freestyle", 1: "backstroke", 2: "breaststroke", 3: "butterfly", 4: "drill",
		5: "mixed", 6: "im",
	},
	TypeLengthType:         {0: "idle", 1: "active"},
	TypeDisplayOrientation: {0: "auto", 1: "portrait", 2: "landscape", 3: "portraitFlipped", 4: "landscapeFlipped"},
	TypeSide:               {0: "right", 1: "left"},
	TypeFitBaseUnit:        {0: "other", 1: "kilogram", 2: "pound"},
}

var typeValues = func() map[string]map[string]int64 {
	out := make(map[string]map[string]int64, len(Types))
	for typ, values := range Types {
		rev := make(map[string]int64, len(values))
		for v, name := range values {
			rev[name] = v
		}
		out[typ] = rev
	}
	return out
}()

// TypeName returns the symbolic name of value v of enum type typ
func TypeName(typ string, v int64) (string, bool) {
	values, ok := Types[typ]
	if !ok {
		return "", false
	}
	name, ok := values[v]
	return name, ok
}

// TypeValue is the reverse of TypeName
func TypeValue(typ, name string) (int64, bool) {
	values, ok := typeValues[typ]
	if !ok {
		return 0, false
	}
	v, ok := values[name]
	return v, ok
}

// IsEnumType reports whether typ has a symbolic value table
func IsEnumType(typ string) bool {
	_, ok := Types[typ]
	return ok
}
