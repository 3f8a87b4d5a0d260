package profile

import "strconv"

// MesgNum is a global message number
type MesgNum uint16

// Global message numbers
const (
	MesgNumFileID               MesgNum = 0
	MesgNumCapabilities         MesgNum = 1
	MesgNumDeviceSettings       MesgNum = 2
	MesgNumUserProfile          MesgNum = 3
	MesgNumHrmProfile           MesgNum = 4
	MesgNumSdmProfile           MesgNum = 5
	MesgNumBikeProfile          MesgNum = 6
	MesgNumZonesTarget          MesgNum = 7
	MesgNumHrZone               MesgNum = 8
	MesgNumPowerZone            MesgNum = 9
	MesgNumMetZone              MesgNum = 10
	MesgNumSport                MesgNum = 12
	MesgNumTrainingSettings     MesgNum = 13
	MesgNumGoal                 MesgNum = 15
	MesgNumSession              MesgNum = 18
	MesgNumLap                  MesgNum = 19
	MesgNumRecord               MesgNum = 20
	MesgNumEvent                MesgNum = 21
	MesgNumDeviceInfo           MesgNum = 23
	MesgNumWorkout              MesgNum = 26
	MesgNumWorkoutStep          MesgNum = 27
	MesgNumSchedule             MesgNum = 28
	MesgNumWeightScale          MesgNum = 30
	MesgNumCourse               MesgNum = 31
	MesgNumCoursePoint          MesgNum = 32
	MesgNumTotals               MesgNum = 33
	MesgNumActivity             MesgNum = 34
	MesgNumSoftware             MesgNum = 35
	MesgNumFileCapabilities     MesgNum = 37
	MesgNumMesgCapabilities     MesgNum = 38
	MesgNumFieldCapabilities    MesgNum = 39
	MesgNumFileCreator          MesgNum = 49
	MesgNumBloodPressure        MesgNum = 51
	MesgNumSpeedZone            MesgNum = 53
	MesgNumMonitoring           MesgNum = 55
	MesgNumTrainingFile         MesgNum = 72
	MesgNumHrv                  MesgNum = 78
	MesgNumAntRx                MesgNum = 80
	MesgNumAntTx                MesgNum = 81
	MesgNumAntChannelID         MesgNum = 82
	MesgNumLength               MesgNum = 101
	MesgNumMonitoringInfo       MesgNum = 103
	MesgNumPad                  MesgNum = 105
	MesgNumSlaveDevice          MesgNum = 106
	MesgNumConnectivity         MesgNum = 127
	MesgNumWeatherConditions    MesgNum = 128
	MesgNumWeatherAlert         MesgNum = 129
	MesgNumCadenceZone          MesgNum = 131
	MesgNumHr                   MesgNum = 132
	MesgNumSegmentLap           MesgNum = 142
	MesgNumMemoGlob             MesgNum = 145
	MesgNumSegmentID            MesgNum = 148
	MesgNumSegmentLeaderboard   MesgNum = 149
	MesgNumSegmentPoint         MesgNum = 150
	MesgNumSegmentFile          MesgNum = 151
	MesgNumWorkoutSession       MesgNum = 158
	MesgNumWatchfaceSettings    MesgNum = 159
	MesgNumGpsMetadata          MesgNum = 160
	MesgNumCameraEvent          MesgNum = 161
	MesgNumTimestampCorrelation MesgNum = 162
	MesgNumGyroscopeData        MesgNum = 164
	MesgNumAccelerometerData    MesgNum = 165
	MesgNumThreeDSensorCal      MesgNum = 167
	MesgNumVideoFrame           MesgNum = 169
	MesgNumObdiiData            MesgNum = 174
	MesgNumNmeaSentence         MesgNum = 177
	MesgNumAviationAttitude     MesgNum = 178
	MesgNumVideo                MesgNum = 184
	MesgNumVideoTitle           MesgNum = 185
	MesgNumVideoDescription     MesgNum = 186
	MesgNumVideoClip            MesgNum = 187
	MesgNumOhrSettings          MesgNum = 188
	MesgNumExdScreenConfig      MesgNum = 200
	MesgNumExdDataFieldConfig   MesgNum = 201
	MesgNumExdDataConceptConfig MesgNum = 202
	MesgNumFieldDescription     MesgNum = 206
	MesgNumDeveloperDataID      MesgNum = 207
	MesgNumMagnetometerData     MesgNum = 208
	MesgNumBarometerData        MesgNum = 209
	MesgNumOneDSensorCal        MesgNum = 210
	MesgNumTimeInZone           MesgNum = 216
	MesgNumSet                  MesgNum = 225
	MesgNumStressLevel          MesgNum = 227
	MesgNumDiveSettings         MesgNum = 258
	MesgNumDiveGas              MesgNum = 259
	MesgNumDiveAlarm            MesgNum = 262
	MesgNumExerciseTitle        MesgNum = 264
	MesgNumDiveSummary          MesgNum = 268
	MesgNumSpo2Data             MesgNum = 269
	MesgNumJump                 MesgNum = 285
	MesgNumRespirationRate      MesgNum = 297
	MesgNumSplit                MesgNum = 312
	MesgNumClimbPro             MesgNum = 317
	MesgNumHrvStatusSummary     MesgNum = 370
	MesgNumHrvValue             MesgNum = 371
	MesgNumDeviceAuxBatteryInfo MesgNum = 375
	MesgNumMfgRangeMin          MesgNum = 0xFF00
	MesgNumMfgRangeMax          MesgNum = 0xFFFE
	MesgNumInvalid              MesgNum = 0xFFFF
)

// String returns the profile message name, or the decimal number when unknown
func (n MesgNum) String() string {
	if name, ok := Types[TypeMesgNum][int64(n)]; ok {
		return name
	}
	return strconv.Itoa(int(n))
}

// MesgNumByName returns the global message number for a name such as "record"
func MesgNumByName(name string) (MesgNum, bool) {
	v, ok := TypeValue(TypeMesgNum, name)
	return MesgNum(v), ok
}

// MesgNumName returns the profile name of a message number and whether it is known
func MesgNumName(n MesgNum) (string, bool) {
	return TypeName(TypeMesgNum, int64(n))
}
