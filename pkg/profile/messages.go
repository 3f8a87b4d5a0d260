package profile

func refs(field uint8, values ...int64) []SubFieldMap {
	out := make([]SubFieldMap, len(values))
	for i, v := range values {
		out[i] = SubFieldMap{RefFieldNum: field, RefValue: v}
	}
	return out
}

// manufacturers whose product field is a garminProduct
var garminManufacturers = []int64{1, 13, 15, 89}

func productSubFields(manufacturerField uint8) []SubField {
	return []SubField{
		{Name: "faveroProduct", Type: "faveroProduct", BaseType: BaseUint16, Maps: refs(manufacturerField, 263)},
		{Name: "garminProduct", Type: TypeGarminProduct, BaseType: BaseUint16, Maps: refs(manufacturerField, garminManufacturers...)},
	}
}

func timestampField() *FieldProfile {
	return &FieldProfile{Num: FieldTimestamp, Name: "timestamp", Type: TypeDateTime, BaseType: BaseUint32, Units: "s"}
}

func messageIndexField() *FieldProfile {
	return &FieldProfile{Num: FieldMessageIndex, Name: "messageIndex", Type: "messageIndex", BaseType: BaseUint16}
}

var messageTable = []*MessageProfile{
	{Num: MesgNumFileID, Name: "fileId", FieldList: []*FieldProfile{
		{Num: 0, Name: "type", Type: TypeFile, BaseType: BaseEnum},
		{Num: 1, Name: "manufacturer", Type: TypeManufacturer, BaseType: BaseUint16},
		{Num: 2, Name: "product", BaseType: BaseUint16, SubFields: productSubFields(1)},
		{Num: 3, Name: "serialNumber", BaseType: BaseUint32z},
		{Num: 4, Name: "timeCreated", Type: TypeDateTime, BaseType: BaseUint32},
		{Num: 5, Name: "number", BaseType: BaseUint16},
		{Num: 8, Name: "productName", BaseType: BaseString},
	}},

	{Num: MesgNumDeviceSettings, Name: "deviceSettings", FieldList: []*FieldProfile{
		{Num: 0, Name: "activeTimeZone", BaseType: BaseUint8},
		{Num: 1, Name: "utcOffset", BaseType: BaseUint32},
		{Num: 2, Name: "timeOffset", BaseType: BaseUint32, Array: true, Units: "s"},
		{Num: 4, Name: "timeMode", Type: TypeTimeMode, BaseType: BaseEnum, Array: true},
		{Num: 5, Name: "timeZoneOffset", BaseType: BaseSint8, Array: true, Scale: 4, Units: "hr"},
		{Num: 12, Name: "backlightMode", Type: TypeBacklightMode, BaseType: BaseEnum},
		{Num: 36, Name: "activityTrackerEnabled", Type: TypeBool, BaseType: BaseEnum},
		{Num: 39, Name: "clockTime", Type: TypeDateTime, BaseType: BaseUint32},
		{Num: 40, Name: "pagesEnabled", BaseType: BaseUint16, Array: true},
		{Num: 46, Name: "moveAlertEnabled", Type: TypeBool, BaseType: BaseEnum},
		{Num: 47, Name: "dateMode", Type: TypeDateMode, BaseType: BaseEnum},
		{Num: 55, Name: "displayOrientation", Type: TypeDisplayOrientation, BaseType: BaseEnum},
		{Num: 56, Name: "mountingSide", Type: TypeSide, BaseType: BaseEnum},
		{Num: 57, Name: "defaultPage", BaseType: BaseUint16, Array: true},
		{Num: 58, Name: "autosyncMinSteps", BaseType: BaseUint16, Units: "steps"},
		{Num: 59, Name: "autosyncMinTime", BaseType: BaseUint16, Units: "minutes"},
		{Num: 80, Name: "lactateThresholdAutodetectEnabled", Type: TypeBool, BaseType: BaseEnum},
		{Num: 86, Name: "bleAutoUploadEnabled", Type: TypeBool, BaseType: BaseEnum},
		{Num: 90, Name: "autoActivityDetect", BaseType: BaseUint32},
		{Num: 94, Name: "numberOfScreens", BaseType: BaseUint8},
	}},

	{Num: MesgNumUserProfile, Name: "userProfile", FieldList: []*FieldProfile{
		messageIndexField(),
		{Num: 0, Name: "friendlyName", BaseType: BaseString},
		{Num: 1, Name: "gender", Type: TypeGender, BaseType: BaseEnum},
		{Num: 2, Name: "age", BaseType: BaseUint8, Units: "years"},
		{Num: 3, Name: "height", BaseType: BaseUint8, Scale: 100, Units: "m"},
		{Num: 4, Name: "weight", BaseType: BaseUint16, Scale: 10, Units: "kg"},
		{Num: 5, Name: "language", Type: TypeLanguage, BaseType: BaseEnum},
		{Num: 6, Name: "elevSetting", Type: TypeDisplayMeasure, BaseType: BaseEnum},
		{Num: 7, Name: "weightSetting", Type: TypeDisplayMeasure, BaseType: BaseEnum},
		{Num: 8, Name: "restingHeartRate", BaseType: BaseUint8, Units: "bpm"},
		{Num: 9, Name: "defaultMaxRunningHeartRate", BaseType: BaseUint8, Units: "bpm"},
		{Num: 10, Name: "defaultMaxBikingHeartRate", BaseType: BaseUint8, Units: "bpm"},
		{Num: 11, Name: "defaultMaxHeartRate", BaseType: BaseUint8, Units: "bpm"},
		{Num: 12, Name: "hrSetting", Type: TypeDisplayHeart, BaseType: BaseEnum},
		{Num: 13, Name: "speedSetting", Type: TypeDisplayMeasure, BaseType: BaseEnum},
		{Num: 14, Name: "distSetting", Type: TypeDisplayMeasure, BaseType: BaseEnum},
		{Num: 16, Name: "powerSetting", Type: TypeDisplayPower, BaseType: BaseEnum},
		{Num: 17, Name: "activityClass", Type: "activityClass", BaseType: BaseEnum},
		{Num: 18, Name: "positionSetting", Type: TypeDisplayPosition, BaseType: BaseEnum},
		{Num: 21, Name: "temperatureSetting", Type: TypeDisplayMeasure, BaseType: BaseEnum},
		{Num: 22, Name: "localId", Type: "userLocalId", BaseType: BaseUint16},
		{Num: 23, Name: "globalId", BaseType: BaseByte, Array: true},
		{Num: 30, Name: "heightSetting", Type: TypeDisplayMeasure, BaseType: BaseEnum},
		{Num: 31, Name: "userRunningStepLength", BaseType: BaseUint16, Scale: 1000, Units: "m"},
		{Num: 32, Name: "userWalkingStepLength", BaseType: BaseUint16, Scale: 1000, Units: "m"},
	}},

	{Num: MesgNumZonesTarget, Name: "zonesTarget", FieldList: []*FieldProfile{
		{Num: 1, Name: "maxHeartRate", BaseType: BaseUint8},
		{Num: 2, Name: "thresholdHeartRate", BaseType: BaseUint8},
		{Num: 3, Name: "functionalThresholdPower", BaseType: BaseUint16},
		{Num: 5, Name: "hrCalcType", Type: TypeHrZoneCalc, BaseType: BaseEnum},
		{Num: 7, Name: "pwrCalcType", Type: TypePwrZoneCalc, BaseType: BaseEnum},
	}},

	{Num: MesgNumSport, Name: "sport", FieldList: []*FieldProfile{
		{Num: 0, Name: "sport", Type: TypeSport, BaseType: BaseEnum},
		{Num: 1, Name: "subSport", Type: TypeSubSport, BaseType: BaseEnum},
		{Num: 3, Name: "name", BaseType: BaseString},
	}},

	{Num: MesgNumTrainingSettings, Name: "trainingSettings", FieldList: []*FieldProfile{
		{Num: 31, Name: "targetDistance", BaseType: BaseUint32, Scale: 100, Units: "m"},
		{Num: 32, Name: "targetSpeed", BaseType: BaseUint16, Scale: 1000, Units: "m/s"},
		{Num: 33, Name: "targetTime", BaseType: BaseUint32, Units: "s"},
		{Num: 153, Name: "preciseTargetSpeed", BaseType: BaseUint32, Scale: 1000000, Units: "m/s"},
	}},

	{Num: MesgNumSession, Name: "session", FieldList: []*FieldProfile{
		messageIndexField(),
		timestampField(),
		{Num: 0, Name: "event", Type: TypeEvent, BaseType: BaseEnum},
		{Num: 1, Name: "eventType", Type: TypeEventType, BaseType: BaseEnum},
		{Num: 2, Name: "startTime", Type: TypeDateTime, BaseType: BaseUint32},
		{Num: 3, Name: "startPositionLat", BaseType: BaseSint32, Units: "semicircles"},
		{Num: 4, Name: "startPositionLong", BaseType: BaseSint32, Units: "semicircles"},
		{Num: 5, Name: "sport", Type: TypeSport, BaseType: BaseEnum},
		{Num: 6, Name: "subSport", Type: TypeSubSport, BaseType: BaseEnum},
		{Num: 7, Name: "totalElapsedTime", BaseType: BaseUint32, Scale: 1000, Units: "s"},
		{Num: 8, Name: "totalTimerTime", BaseType: BaseUint32, Scale: 1000, Units: "s"},
		{Num: 9, Name: "totalDistance", BaseType: BaseUint32, Scale: 100, Units: "m"},
		{Num: 10, Name: "totalCycles", BaseType: BaseUint32, Units: "cycles", SubFields: []SubField{
			{Name: "totalStrides", BaseType: BaseUint32, Units: "strides", Maps: refs(5, 1, 11)},
			{Name: "totalStrokes", BaseType: BaseUint32, Units: "strokes", Maps: refs(5, 2, 5, 15, 37)},
		}},
		{Num: 11, Name: "totalCalories", BaseType: BaseUint16, Units: "kcal"},
		{Num: 13, Name: "totalFatCalories", BaseType: BaseUint16, Units: "kcal"},
		{Num: 14, Name: "avgSpeed", BaseType: BaseUint16, Scale: 1000, Units: "m/s",
			Components: []Component{{FieldNum: 124, Bits: 16, Scale: 1000}}},
		{Num: 15, Name: "maxSpeed", BaseType: BaseUint16, Scale: 1000, Units: "m/s",
			Components: []Component{{FieldNum: 125, Bits: 16, Scale: 1000}}},
		{Num: 16, Name: "avgHeartRate", BaseType: BaseUint8, Units: "bpm"},
		{Num: 17, Name: "maxHeartRate", BaseType: BaseUint8, Units: "bpm"},
		{Num: 18, Name: "avgCadence", BaseType: BaseUint8, Units: "rpm", SubFields: []SubField{
			{Name: "avgRunningCadence", BaseType: BaseUint8, Units: "strides/min", Maps: refs(5, 1)},
		}},
		{Num: 19, Name: "maxCadence", BaseType: BaseUint8, Units: "rpm", SubFields: []SubField{
			{Name: "maxRunningCadence", BaseType: BaseUint8, Units: "strides/min", Maps: refs(5, 1)},
		}},
		{Num: 20, Name: "avgPower", BaseType: BaseUint16, Units: "watts"},
		{Num: 21, Name: "maxPower", BaseType: BaseUint16, Units: "watts"},
		{Num: 22, Name: "totalAscent", BaseType: BaseUint16, Units: "m"},
		{Num: 23, Name: "totalDescent", BaseType: BaseUint16, Units: "m"},
		{Num: 24, Name: "totalTrainingEffect", BaseType: BaseUint8, Scale: 10},
		{Num: 25, Name: "firstLapIndex", BaseType: BaseUint16},
		{Num: 26, Name: "numLaps", BaseType: BaseUint16},
		{Num: 27, Name: "eventGroup", BaseType: BaseUint8},
		{Num: 28, Name: "trigger", Type: TypeSessionTrigger, BaseType: BaseEnum},
		{Num: 29, Name: "necLat", BaseType: BaseSint32, Units: "semicircles"},
		{Num: 30, Name: "necLong", BaseType: BaseSint32, Units: "semicircles"},
		{Num: 31, Name: "swcLat", BaseType: BaseSint32, Units: "semicircles"},
		{Num: 32, Name: "swcLong", BaseType: BaseSint32, Units: "semicircles"},
		{Num: 34, Name: "normalizedPower", BaseType: BaseUint16, Units: "watts"},
		{Num: 35, Name: "trainingStressScore", BaseType: BaseUint16, Scale: 10, Units: "tss"},
		{Num: 36, Name: "intensityFactor", BaseType: BaseUint16, Scale: 1000, Units: "if"},
		{Num: 44, Name: "poolLength", BaseType: BaseUint16, Scale: 100, Units: "m"},
		{Num: 48, Name: "totalWork", BaseType: BaseUint32, Units: "J"},
		{Num: 49, Name: "avgAltitude", BaseType: BaseUint16, Scale: 5, Offset: 500, Units: "m",
			Components: []Component{{FieldNum: 126, Bits: 16, Scale: 5, Offset: 500}}},
		{Num: 50, Name: "maxAltitude", BaseType: BaseUint16, Scale: 5, Offset: 500, Units: "m",
			Components: []Component{{FieldNum: 128, Bits: 16, Scale: 5, Offset: 500}}},
		{Num: 57, Name: "avgTemperature", BaseType: BaseSint8, Units: "C"},
		{Num: 58, Name: "maxTemperature", BaseType: BaseSint8, Units: "C"},
		{Num: 64, Name: "minHeartRate", BaseType: BaseUint8, Units: "bpm"},
		{Num: 71, Name: "minAltitude", BaseType: BaseUint16, Scale: 5, Offset: 500, Units: "m",
			Components: []Component{{FieldNum: 127, Bits: 16, Scale: 5, Offset: 500}}},
		{Num: 110, Name: "sportProfileName", BaseType: BaseString},
		{Num: 124, Name: "enhancedAvgSpeed", BaseType: BaseUint32, Scale: 1000, Units: "m/s"},
		{Num: 125, Name: "enhancedMaxSpeed", BaseType: BaseUint32, Scale: 1000, Units: "m/s"},
		{Num: 126, Name: "enhancedAvgAltitude", BaseType: BaseUint32, Scale: 5, Offset: 500, Units: "m"},
		{Num: 127, Name: "enhancedMinAltitude", BaseType: BaseUint32, Scale: 5, Offset: 500, Units: "m"},
		{Num: 128, Name: "enhancedMaxAltitude", BaseType: BaseUint32, Scale: 5, Offset: 500, Units: "m"},
	}},

	{Num: MesgNumLap, Name: "lap", FieldList: []*FieldProfile{
		messageIndexField(),
		timestampField(),
		{Num: 0, Name: "event", Type: TypeEvent, BaseType: BaseEnum},
		{Num: 1, Name: "eventType", Type: TypeEventType, BaseType: BaseEnum},
		{Num: 2, Name: "startTime", Type: TypeDateTime, BaseType: BaseUint32},
		{Num: 3, Name: "startPositionLat", BaseType: BaseSint32, Units: "semicircles"},
		{Num: 4, Name: "startPositionLong", BaseType: BaseSint32, Units: "semicircles"},
		{Num: 5, Name: "endPositionLat", BaseType: BaseSint32, Units: "semicircles"},
		{Num: 6, Name: "endPositionLong", BaseType: BaseSint32, Units: "semicircles"},
		{Num: 7, Name: "totalElapsedTime", BaseType: BaseUint32, Scale: 1000, Units: "s"},
		{Num: 8, Name: "totalTimerTime", BaseType: BaseUint32, Scale: 1000, Units: "s"},
		{Num: 9, Name: "totalDistance", BaseType: BaseUint32, Scale: 100, Units: "m"},
		{Num: 10, Name: "totalCycles", BaseType: BaseUint32, Units: "cycles", SubFields: []SubField{
			{Name: "totalStrides", BaseType: BaseUint32, Units: "strides", Maps: refs(25, 1, 11)},
			{Name: "totalStrokes", BaseType: BaseUint32, Units: "strokes", Maps: refs(25, 2, 5, 15, 37)},
		}},
		{Num: 11, Name: "totalCalories", BaseType: BaseUint16, Units: "kcal"},
		{Num: 13, Name: "avgSpeed", BaseType: BaseUint16, Scale: 1000, Units: "m/s",
			Components: []Component{{FieldNum: 110, Bits: 16, Scale: 1000}}},
		{Num: 14, Name: "maxSpeed", BaseType: BaseUint16, Scale: 1000, Units: "m/s",
			Components: []Component{{FieldNum: 111, Bits: 16, Scale: 1000}}},
		{Num: 15, Name: "avgHeartRate", BaseType: BaseUint8, Units: "bpm"},
		{Num: 16, Name: "maxHeartRate", BaseType: BaseUint8, Units: "bpm"},
		{Num: 17, Name: "avgCadence", BaseType: BaseUint8, Units: "rpm", SubFields: []SubField{
			{Name: "avgRunningCadence", BaseType: BaseUint8, Units: "strides/min", Maps: refs(25, 1)},
		}},
		{Num: 18, Name: "maxCadence", BaseType: BaseUint8, Units: "rpm", SubFields: []SubField{
			{Name: "maxRunningCadence", BaseType: BaseUint8, Units: "strides/min", Maps: refs(25, 1)},
		}},
		{Num: 19, Name: "avgPower", BaseType: BaseUint16, Units: "watts"},
		{Num: 20, Name: "maxPower", BaseType: BaseUint16, Units: "watts"},
		{Num: 21, Name: "totalAscent", BaseType: BaseUint16, Units: "m"},
		{Num: 22, Name: "totalDescent", BaseType: BaseUint16, Units: "m"},
		{Num: 23, Name: "intensity", Type: TypeIntensity, BaseType: BaseEnum},
		{Num: 24, Name: "lapTrigger", Type: TypeLapTrigger, BaseType: BaseEnum},
		{Num: 25, Name: "sport", Type: TypeSport, BaseType: BaseEnum},
		{Num: 26, Name: "eventGroup", BaseType: BaseUint8},
		{Num: 39, Name: "subSport", Type: TypeSubSport, BaseType: BaseEnum},
		{Num: 110, Name: "enhancedAvgSpeed", BaseType: BaseUint32, Scale: 1000, Units: "m/s"},
		{Num: 111, Name: "enhancedMaxSpeed", BaseType: BaseUint32, Scale: 1000, Units: "m/s"},
	}},

	{Num: MesgNumRecord, Name: "record", FieldList: []*FieldProfile{
		timestampField(),
		{Num: 0, Name: "positionLat", BaseType: BaseSint32, Units: "semicircles"},
		{Num: 1, Name: "positionLong", BaseType: BaseSint32, Units: "semicircles"},
		{Num: 2, Name: "altitude", BaseType: BaseUint16, Scale: 5, Offset: 500, Units: "m",
			Components: []Component{{FieldNum: 78, Bits: 16, Scale: 5, Offset: 500}}},
		{Num: 3, Name: "heartRate", BaseType: BaseUint8, Units: "bpm"},
		{Num: 4, Name: "cadence", BaseType: BaseUint8, Units: "rpm"},
		{Num: 5, Name: "distance", BaseType: BaseUint32, Scale: 100, Units: "m"},
		{Num: 6, Name: "speed", BaseType: BaseUint16, Scale: 1000, Units: "m/s",
			Components: []Component{{FieldNum: 73, Bits: 16, Scale: 1000}}},
		{Num: 7, Name: "power", BaseType: BaseUint16, Units: "watts"},
		{Num: 8, Name: "compressedSpeedDistance", BaseType: BaseByte, Array: true,
			Components: []Component{
				{FieldNum: 6, Bits: 12, Scale: 100},
				{FieldNum: 5, Bits: 12, Scale: 16, Accumulate: true},
			}},
		{Num: 9, Name: "grade", BaseType: BaseSint16, Scale: 100, Units: "%"},
		{Num: 10, Name: "resistance", BaseType: BaseUint8},
		{Num: 11, Name: "timeFromCourse", BaseType: BaseSint32, Scale: 1000, Units: "s"},
		{Num: 12, Name: "cycleLength", BaseType: BaseUint8, Scale: 100, Units: "m"},
		{Num: 13, Name: "temperature", BaseType: BaseSint8, Units: "C"},
		{Num: 17, Name: "speed1s", BaseType: BaseUint8, Array: true, Scale: 16, Units: "m/s"},
		{Num: 18, Name: "cycles", BaseType: BaseUint8, Units: "cycles",
			Components: []Component{{FieldNum: 19, Bits: 8, Accumulate: true}}},
		{Num: 19, Name: "totalCycles", BaseType: BaseUint32, Units: "cycles"},
		{Num: 28, Name: "compressedAccumulatedPower", BaseType: BaseUint16, Units: "watts",
			Components: []Component{{FieldNum: 29, Bits: 16, Accumulate: true}}},
		{Num: 29, Name: "accumulatedPower", BaseType: BaseUint32, Units: "watts"},
		{Num: 30, Name: "leftRightBalance", Type: "leftRightBalance", BaseType: BaseUint8},
		{Num: 31, Name: "gpsAccuracy", BaseType: BaseUint8, Units: "m"},
		{Num: 32, Name: "verticalSpeed", BaseType: BaseSint16, Scale: 1000, Units: "m/s"},
		{Num: 33, Name: "calories", BaseType: BaseUint16, Units: "kcal"},
		{Num: 39, Name: "verticalOscillation", BaseType: BaseUint16, Scale: 10, Units: "mm"},
		{Num: 40, Name: "stanceTimePercent", BaseType: BaseUint16, Scale: 100, Units: "percent"},
		{Num: 41, Name: "stanceTime", BaseType: BaseUint16, Scale: 10, Units: "ms"},
		{Num: 42, Name: "activityType", Type: TypeActivityType, BaseType: BaseEnum},
		{Num: 53, Name: "fractionalCadence", BaseType: BaseUint8, Scale: 128, Units: "rpm"},
		{Num: 73, Name: "enhancedSpeed", BaseType: BaseUint32, Scale: 1000, Units: "m/s"},
		{Num: 78, Name: "enhancedAltitude", BaseType: BaseUint32, Scale: 5, Offset: 500, Units: "m"},
		{Num: 81, Name: "batterySoc", BaseType: BaseUint8, Scale: 2, Units: "percent"},
		{Num: 83, Name: "verticalRatio", BaseType: BaseUint16, Scale: 100, Units: "percent"},
		{Num: 85, Name: "stepLength", BaseType: BaseUint16, Scale: 10, Units: "mm"},
		{Num: 91, Name: "absolutePressure", BaseType: BaseUint32, Units: "Pa"},
		{Num: 108, Name: "enhancedRespirationRate", BaseType: BaseUint16, Scale: 100, Units: "Breaths/min"},
	}},

	{Num: MesgNumEvent, Name: "event", FieldList: []*FieldProfile{
		timestampField(),
		{Num: 0, Name: "event", Type: TypeEvent, BaseType: BaseEnum},
		{Num: 1, Name: "eventType", Type: TypeEventType, BaseType: BaseEnum},
		{Num: 2, Name: "data16", BaseType: BaseUint16,
			Components: []Component{{FieldNum: 3, Bits: 16}}},
		{Num: 3, Name: "data", BaseType: BaseUint32, SubFields: []SubField{
			{Name: "timerTrigger", Type: TypeTimerTrigger, BaseType: BaseEnum, Maps: refs(0, 0)},
			{Name: "coursePointIndex", Type: "messageIndex", BaseType: BaseUint16, Maps: refs(0, 10)},
			{Name: "batteryLevel", BaseType: BaseUint16, Scale: 1000, Units: "V", Maps: refs(0, 11)},
			{Name: "virtualPartnerSpeed", BaseType: BaseUint16, Scale: 1000, Units: "m/s", Maps: refs(0, 12)},
			{Name: "hrHighAlert", BaseType: BaseUint8, Units: "bpm", Maps: refs(0, 13)},
			{Name: "hrLowAlert", BaseType: BaseUint8, Units: "bpm", Maps: refs(0, 14)},
			{Name: "speedHighAlert", BaseType: BaseUint32, Scale: 1000, Units: "m/s", Maps: refs(0, 15)},
			{Name: "speedLowAlert", BaseType: BaseUint32, Scale: 1000, Units: "m/s", Maps: refs(0, 16)},
			{Name: "cadHighAlert", BaseType: BaseUint16, Units: "rpm", Maps: refs(0, 17)},
			{Name: "cadLowAlert", BaseType: BaseUint16, Units: "rpm", Maps: refs(0, 18)},
			{Name: "powerHighAlert", BaseType: BaseUint16, Units: "watts", Maps: refs(0, 19)},
			{Name: "powerLowAlert", BaseType: BaseUint16, Units: "watts", Maps: refs(0, 20)},
			{Name: "timeDurationAlert", BaseType: BaseUint32, Scale: 1000, Units: "s", Maps: refs(0, 23)},
			{Name: "distanceDurationAlert", BaseType: BaseUint32, Scale: 100, Units: "m", Maps: refs(0, 24)},
			{Name: "calorieDurationAlert", BaseType: BaseUint32, Units: "calories", Maps: refs(0, 25)},
			{Name: "sportPoint", BaseType: BaseUint32, Maps: refs(0, 33), Components: []Component{
				{FieldNum: 7, Bits: 16},
				{FieldNum: 8, Bits: 16},
			}},
			{Name: "gearChangeData", BaseType: BaseUint32, Maps: refs(0, 42, 43), Components: []Component{
				{FieldNum: 11, Bits: 8},
				{FieldNum: 12, Bits: 8},
				{FieldNum: 9, Bits: 8},
				{FieldNum: 10, Bits: 8},
			}},
			{Name: "commTimeout", Type: "commTimeoutType", BaseType: BaseUint16, Maps: refs(0, 47)},
		}},
		{Num: 4, Name: "eventGroup", BaseType: BaseUint8},
		{Num: 7, Name: "score", BaseType: BaseUint16},
		{Num: 8, Name: "opponentScore", BaseType: BaseUint16},
		{Num: 9, Name: "frontGearNum", BaseType: BaseUint8z},
		{Num: 10, Name: "frontGear", BaseType: BaseUint8z},
		{Num: 11, Name: "rearGearNum", BaseType: BaseUint8z},
		{Num: 12, Name: "rearGear", BaseType: BaseUint8z},
		{Num: 13, Name: "deviceIndex", Type: "deviceIndex", BaseType: BaseUint8},
	}},

	{Num: MesgNumDeviceInfo, Name: "deviceInfo", FieldList: []*FieldProfile{
		timestampField(),
		{Num: 0, Name: "deviceIndex", Type: "deviceIndex", BaseType: BaseUint8},
		{Num: 1, Name: "deviceType", BaseType: BaseUint8, SubFields: []SubField{
			{Name: "bleDeviceType", Type: TypeBleDeviceType, BaseType: BaseUint8, Maps: refs(25, 3)},
			{Name: "antplusDeviceType", Type: TypeAntplusDeviceType, BaseType: BaseUint8, Maps: refs(25, 1)},
			{Name: "antDeviceType", BaseType: BaseUint8, Maps: refs(25, 0)},
			{Name: "localDeviceType", Type: TypeLocalDeviceType, BaseType: BaseUint8, Maps: refs(25, 5)},
		}},
		{Num: 2, Name: "manufacturer", Type: TypeManufacturer, BaseType: BaseUint16},
		{Num: 3, Name: "serialNumber", BaseType: BaseUint32z},
		{Num: 4, Name: "product", BaseType: BaseUint16, SubFields: productSubFields(2)},
		{Num: 5, Name: "softwareVersion", BaseType: BaseUint16, Scale: 100},
		{Num: 6, Name: "hardwareVersion", BaseType: BaseUint8},
		{Num: 7, Name: "cumOperatingTime", BaseType: BaseUint32, Units: "s"},
		{Num: 10, Name: "batteryVoltage", BaseType: BaseUint16, Scale: 256, Units: "V"},
		{Num: 11, Name: "batteryStatus", Type: TypeBatteryStatus, BaseType: BaseUint8},
		{Num: 18, Name: "sensorPosition", Type: "bodyLocation", BaseType: BaseEnum},
		{Num: 19, Name: "descriptor", BaseType: BaseString},
		{Num: 20, Name: "antTransmissionType", BaseType: BaseUint8z},
		{Num: 21, Name: "antDeviceNumber", BaseType: BaseUint16z},
		{Num: 22, Name: "antNetwork", Type: "antNetwork", BaseType: BaseEnum},
		{Num: 25, Name: "sourceType", Type: TypeSourceType, BaseType: BaseEnum},
		{Num: 27, Name: "productName", BaseType: BaseString},
		{Num: 32, Name: "batteryLevel", BaseType: BaseUint8, Units: "%"},
	}},

	{Num: MesgNumActivity, Name: "activity", FieldList: []*FieldProfile{
		timestampField(),
		{Num: 0, Name: "totalTimerTime", BaseType: BaseUint32, Scale: 1000, Units: "s"},
		{Num: 1, Name: "numSessions", BaseType: BaseUint16},
		{Num: 2, Name: "type", Type: TypeActivity, BaseType: BaseEnum},
		{Num: 3, Name: "event", Type: TypeEvent, BaseType: BaseEnum},
		{Num: 4, Name: "eventType", Type: TypeEventType, BaseType: BaseEnum},
		{Num: 5, Name: "localTimestamp", Type: TypeLocalDateTime, BaseType: BaseUint32},
		{Num: 6, Name: "eventGroup", BaseType: BaseUint8},
	}},

	{Num: MesgNumFileCreator, Name: "fileCreator", FieldList: []*FieldProfile{
		{Num: 0, Name: "softwareVersion", BaseType: BaseUint16},
		{Num: 1, Name: "hardwareVersion", BaseType: BaseUint8},
	}},

	{Num: MesgNumHrv, Name: "hrv", FieldList: []*FieldProfile{
		{Num: 0, Name: "time", BaseType: BaseUint16, Array: true, Scale: 1000, Units: "s"},
	}},

	{Num: MesgNumLength, Name: "length", FieldList: []*FieldProfile{
		messageIndexField(),
		timestampField(),
		{Num: 0, Name: "event", Type: TypeEvent, BaseType: BaseEnum},
		{Num: 1, Name: "eventType", Type: TypeEventType, BaseType: BaseEnum},
		{Num: 2, Name: "startTime", Type: TypeDateTime, BaseType: BaseUint32},
		{Num: 3, Name: "totalElapsedTime", BaseType: BaseUint32, Scale: 1000, Units: "s"},
		{Num: 4, Name: "totalTimerTime", BaseType: BaseUint32, Scale: 1000, Units: "s"},
		{Num: 5, Name: "totalStrokes", BaseType: BaseUint16, Units: "strokes"},
		{Num: 6, Name: "avgSpeed", BaseType: BaseUint16, Scale: 1000, Units: "m/s"},
		{Num: 7, Name: "swimStroke", Type: TypeSwimStroke, BaseType: BaseEnum},
		{Num: 9, Name: "avgSwimmingCadence", BaseType: BaseUint8, Units: "strokes/min"},
		{Num: 12, Name: "lengthType", Type: TypeLengthType, BaseType: BaseEnum},
	}},

	{Num: MesgNumHr, Name: "hr", FieldList: []*FieldProfile{
		timestampField(),
		{Num: 0, Name: "fractionalTimestamp", BaseType: BaseUint16, Scale: 32768, Units: "s"},
		{Num: 1, Name: "time256", BaseType: BaseUint8, Scale: 256, Units: "s",
			Components: []Component{{FieldNum: 0, Bits: 8, Scale: 256}}},
		{Num: 6, Name: "filteredBpm", BaseType: BaseUint8, Array: true, Units: "bpm"},
		{Num: 9, Name: "eventTimestamp", BaseType: BaseUint32, Array: true, Scale: 1024, Units: "s"},
		{Num: 10, Name: "eventTimestamp12", BaseType: BaseByte, Array: true, Components: []Component{
			{FieldNum: 9, Bits: 12, Scale: 1024, Accumulate: true},
			{FieldNum: 9, Bits: 12, Scale: 1024, Accumulate: true},
			{FieldNum: 9, Bits: 12, Scale: 1024, Accumulate: true},
			{FieldNum: 9, Bits: 12, Scale: 1024, Accumulate: true},
			{FieldNum: 9, Bits: 12, Scale: 1024, Accumulate: true},
			{FieldNum: 9, Bits: 12, Scale: 1024, Accumulate: true},
			{FieldNum: 9, Bits: 12, Scale: 1024, Accumulate: true},
			{FieldNum: 9, Bits: 12, Scale: 1024, Accumulate: true},
			{FieldNum: 9, Bits: 12, Scale: 1024, Accumulate: true},
			{FieldNum: 9, Bits: 12, Scale: 1024, Accumulate: true},
		}},
	}},

	{Num: MesgNumMemoGlob, Name: "memoGlob", FieldList: []*FieldProfile{
		{Num: FieldPartIndex, Name: "partIndex", BaseType: BaseUint32},
		{Num: 0, Name: "memo", BaseType: BaseByte, Array: true},
		{Num: 1, Name: "mesgNum", Type: TypeMesgNum, BaseType: BaseUint16},
		{Num: 2, Name: "parentIndex", Type: "messageIndex", BaseType: BaseUint16},
		{Num: 3, Name: "fieldNum", BaseType: BaseUint8},
		{Num: 4, Name: "data", BaseType: BaseUint8z, Array: true},
	}},

	{Num: MesgNumTimestampCorrelation, Name: "timestampCorrelation", FieldList: []*FieldProfile{
		timestampField(),
		{Num: 0, Name: "fractionalTimestamp", BaseType: BaseUint16, Scale: 32768, Units: "s"},
		{Num: 1, Name: "systemTimestamp", Type: TypeDateTime, BaseType: BaseUint32, Units: "s"},
		{Num: 2, Name: "fractionalSystemTimestamp", BaseType: BaseUint16, Scale: 32768, Units: "s"},
		{Num: 3, Name: "localTimestamp", Type: TypeLocalDateTime, BaseType: BaseUint32, Units: "s"},
		{Num: 4, Name: "timestampMs", BaseType: BaseUint16, Units: "ms"},
		{Num: 5, Name: "systemTimestampMs", BaseType: BaseUint16, Units: "ms"},
	}},

	{Num: MesgNumFieldDescription, Name: "fieldDescription", FieldList: []*FieldProfile{
		{Num: 0, Name: "developerDataIndex", BaseType: BaseUint8},
		{Num: 1, Name: "fieldDefinitionNumber", BaseType: BaseUint8},
		{Num: 2, Name: "fitBaseTypeId", Type: TypeFitBaseType, BaseType: BaseUint8},
		{Num: 3, Name: "fieldName", BaseType: BaseString},
		{Num: 4, Name: "array", BaseType: BaseUint8},
		{Num: 5, Name: "components", BaseType: BaseString},
		{Num: 6, Name: "scale", BaseType: BaseUint8},
		{Num: 7, Name: "offset", BaseType: BaseSint8},
		{Num: 8, Name: "units", BaseType: BaseString},
		{Num: 9, Name: "bits", BaseType: BaseString},
		{Num: 10, Name: "accumulate", BaseType: BaseString},
		{Num: 13, Name: "fitBaseUnitId", Type: TypeFitBaseUnit, BaseType: BaseUint16},
		{Num: 14, Name: "nativeMesgNum", Type: TypeMesgNum, BaseType: BaseUint16},
		{Num: 15, Name: "nativeFieldNum", BaseType: BaseUint8},
	}},

	{Num: MesgNumDeveloperDataID, Name: "developerDataId", FieldList: []*FieldProfile{
		{Num: 0, Name: "developerId", BaseType: BaseByte, Array: true},
		{Num: 1, Name: "applicationId", BaseType: BaseByte, Array: true},
		{Num: 2, Name: "manufacturerId", Type: TypeManufacturer, BaseType: BaseUint16},
		{Num: 3, Name: "developerDataIndex", BaseType: BaseUint8},
		{Num: 4, Name: "applicationVersion", BaseType: BaseUint32},
	}},

	{Num: MesgNumTimeInZone, Name: "timeInZone", FieldList: []*FieldProfile{
		timestampField(),
		{Num: 0, Name: "referenceMesg", Type: TypeMesgNum, BaseType: BaseUint16},
		{Num: 1, Name: "referenceIndex", Type: "messageIndex", BaseType: BaseUint16},
		{Num: 2, Name: "timeInHrZone", BaseType: BaseUint32, Array: true, Scale: 1000, Units: "s"},
		{Num: 3, Name: "timeInSpeedZone", BaseType: BaseUint32, Array: true, Scale: 1000, Units: "s"},
		{Num: 4, Name: "timeInCadenceZone", BaseType: BaseUint32, Array: true, Scale: 1000, Units: "s"},
		{Num: 5, Name: "timeInPowerZone", BaseType: BaseUint32, Array: true, Scale: 1000, Units: "s"},
		{Num: 6, Name: "hrZoneHighBoundary", BaseType: BaseUint8, Array: true, Units: "bpm"},
		{Num: 7, Name: "speedZoneHighBoundary", BaseType: BaseUint16, Array: true, Scale: 1000, Units: "m/s"},
		{Num: 8, Name: "cadenceZoneHighBondary", BaseType: BaseUint8, Array: true, Units: "rpm"},
		{Num: 9, Name: "powerZoneHighBoundary", BaseType: BaseUint16, Array: true, Units: "watts"},
		{Num: 10, Name: "hrCalcType", Type: TypeHrZoneCalc, BaseType: BaseEnum},
		{Num: 11, Name: "maxHeartRate", BaseType: BaseUint8},
		{Num: 12, Name: "restingHeartRate", BaseType: BaseUint8},
		{Num: 13, Name: "thresholdHeartRate", BaseType: BaseUint8},
		{Num: 14, Name: "pwrCalcType", Type: TypePwrZoneCalc, BaseType: BaseEnum},
		{Num: 15, Name: "functionalThresholdPower", BaseType: BaseUint16},
	}},

	{Num: MesgNumSet, Name: "set", FieldList: []*FieldProfile{
		{Num: 254, Name: "timestamp", Type: TypeDateTime, BaseType: BaseUint32},
		{Num: 0, Name: "duration", BaseType: BaseUint32, Scale: 1000, Units: "s"},
		{Num: 3, Name: "repetitions", BaseType: BaseUint16},
		{Num: 4, Name: "weight", BaseType: BaseUint16, Scale: 16, Units: "kg"},
		{Num: 5, Name: "setType", Type: TypeSetType, BaseType: BaseUint8},
		{Num: 6, Name: "startTime", Type: TypeDateTime, BaseType: BaseUint32},
		{Num: 7, Name: "category", Type: "exerciseCategory", BaseType: BaseUint16, Array: true},
		{Num: 8, Name: "categorySubtype", BaseType: BaseUint16, Array: true},
		{Num: 9, Name: "weightDisplayUnit", Type: TypeFitBaseUnit, BaseType: BaseUint16},
		{Num: 10, Name: "messageIndex", Type: "messageIndex", BaseType: BaseUint16},
		{Num: 11, Name: "wktStepIndex", Type: "messageIndex", BaseType: BaseUint16},
	}},
}
