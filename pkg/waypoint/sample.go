package waypoint

// SampleFirst and SampleLast bound the window of the sample network that
// holds its interesting junctions (a fork, a reverse-only spur and a chain of
// two-way segments).
const (
	SampleFirst ID = 23
	SampleLast  ID = 36
)

// Sample returns the built-in 36-waypoint network exported from an AutoDrive
// config. It lets every command run without an input file.
func Sample() Raw {
	return Raw{
		IDs: "1,2,3,4,5,6,7,8,9,10,11,12,13,14,15,16,17,18,19,20,21,22,23,24,25,26,27,28,29,30,31,32,33,34,35,36",
		X: "4.560,-7.727,-10.710,-22.629,-20.997,-23.740,-34.661,-29.193,-26.151,-14.163,0.593,3.616," +
			"7.682,-20.780,-27.151,-29.287,-31.441,-33.557,-35.660,-37.806,-39.825,-41.849,39.853,45.036," +
			"48.029,42.922,45.779,47.624,50.049,33.281,31.862,29.946,31.091,33.613,37.779,41.928",
		Z: "-1679.041,-1668.809,-1668.346,-1666.496,-1644.232,-1645.531,-1650.689,-1679.502,-1679.786," +
			"-1681.010,-1682.820,-1683.458,-1684.100,-1634.625,-1635.042,-1635.177,-1635.312,-1635.446," +
			"-1635.582,-1635.720,-1635.850,-1635.981,-1677.771,-1672.502,-1667.215,-1678.551,-1677.334," +
			"-1676.144,-1674.997,-1681.256,-1681.925,-1683.022,-1683.069,-1683.053,-1683.227,-1683.233",
		Out:      "-1;3;4;-1;6;7;-1;9;8,10;9;12;11,13;12;15;16;17;18;19;20;21;22;-1;24,26,30;25;-1;27;28;29;29;31;32;33;32,34;33,35;34,36;35,36,36",
		Incoming: "-1;-1;2;3;-1;5;6;9;8,10;9;12;11,13;12;-1;-1;-1;-1;-1;-1;-1;-1;-1;-1;23;24;-1,23;26;27;28,29;-1;-1;33;32,34;33,35;34,36;35,36,36",
		Flags:    "0,0,0,0,1,1,1,0,0,0,1,1,1,0,0,0,0,0,0,0,0,0,0,0,0,1,1,1,1,0,0,0,0,0,0,0",
	}
}
