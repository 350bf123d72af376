package alias

// Rules is the ordered alias table. Order matters, see the package comment.
var Rules = []Rule{
	{Family: "Unified Motorola CM build", Manufacturer: "motorola", Board: []string{"msm8960"}, Set: "moto_msm8960"},
	{Family: "LG Optimus L7", Device: []string{"vee7e"}, Model: []string{"lg-p710"}, Set: "p710"},
	{Family: "Acer Iconia Tab A500", Device: []string{"a500"}, Set: "picasso"},
	{Family: "Motorola DROID RAZR M", Device: []string{"xt907"}, Set: "scorpion_mini"},
	{Family: "ASUS PadFone", Device: []string{"padfone"}, Set: "a66"},
	{Family: "HTC Fireball", Device: []string{"valentewx"}, Set: "fireball"},
	{Family: "LG Optimus 2X", Board: []string{"p990"}, Set: "p990"},
	{Family: "Motorola Photon Q 4G LTE", Device: []string{"xt897c"}, Board: []string{"xt897"}, Set: "xt897"},
	{Family: "Motorola Atrix HD", Device: []string{"mb886"}, Model: []string{"mb886"}, Set: "qinara"},
	{Family: "LG Optimus G International", Board: []string{"geehrc"}, Set: "e975"},
	{Family: "LG Optimus G", Board: []string{"geefhd"}, Set: "e988"},
	{Family: "Motorola DROID 4", Device: []string{"cdma_maserati"}, Board: []string{"maserati"}, Set: "maserati"},
	{Family: "LG Spectrum 4G", Device: []string{"d1lv"}, Board: []string{"d1lv"}, Set: "vs930"},
	{Family: "Motorola Droid 2 Global", Device: []string{"cdma_droid2we"}, Set: "droid2we"},
	{Family: "OPPO Find 5", Device: []string{"x909", "x909t"}, Set: "find5"},
	{Family: "Samsung Galaxy S Plus", Device: []string{"gt-i9001"}, Board: []string{"gt-i9001"}, Model: []string{"gt-i9001"}, Set: "galaxysplus"},
	{Family: "Samsung Galaxy Tab 7.0 Plus", Device: []string{"gt-p6200"}, Set: "p6200"},
	{Family: "Samsung Galaxy Note 8.0", Model: []string{"gt-n5110"}, Set: "konawifi"},
	{Family: "Kindle Fire HD 7", Device: []string{"d01e"}, Set: "kfhd7"},
	{Family: "Rockchip RK29 SDK", Board: []string{"rk29sdk"}, Set: "rk29sdk"},
	{Family: "HTC One GSM", Device: []string{"m7", "m7ul"}, Board: []string{"m7"}, Set: "m7"},
	{Family: "HTC One Sprint", Device: []string{"m7spr"}, Set: "m7wls"},
	{Family: "Samsung Galaxy Note 3 (unified build)", Manufacturer: "samsung", DevicePrefix: []string{"hlte"}, Set: "hlte"},
	{Family: "Samsung Galaxy S4 (unified build)", Manufacturer: "samsung", Device: []string{"jgedlte"}, DevicePrefix: []string{"jflte"}, Set: "jflte"},
	{
		Family: "Samsung Galaxy Note",
		Device: []string{"gt-n7000", "n7000", "galaxynote"},
		Board:  []string{"gt-n7000", "n7000", "galaxynote"},
		Set:    "n7000",
	},
	{Family: "Samsung Galaxy Note 10.1 3G", Device: []string{"p4noterf"}, Model: []string{"gt-n8000"}, Set: "n8000"},
	{Family: "Samsung Galaxy Note 10.1 WiFi", Device: []string{"p4notewifi"}, Model: []string{"gt-n8013"}, Set: "n8013"},
	{Family: "Samsung Galaxy Tab 2 7.0", Board: []string{"piranha"}, Model: []string{"gt-p3110"}, Set: "p3110"},
	{Family: "Samsung Galaxy Tab 2 7.0 WiFi", Device: []string{"espressowifi"}, Model: []string{"gt-p3113"}, Set: "p3113"},
	{
		Family: "Samsung Galaxy Note 2",
		Device: []string{"n7100", "gt-n7100"},
		Board:  []string{"t03g", "n7100", "gt-n7100"},
		Model:  []string{"gt-n7100"},
		Set:    "t03g",
	},
	{
		Family: "Samsung Galaxy Note 2 LTE",
		Device: []string{"t0ltexx", "gt-n7105", "t0ltedv", "gt-n7105t", "t0ltevl", "sgh-i317m"},
		Board:  []string{"t0ltexx", "gt-n7105", "t0ltedv", "gt-n7105t", "t0ltevl", "sgh-i317m"},
		Set:    "t0lte",
	},
	{Family: "Samsung Galaxy Note 2 AT&T", Device: []string{"sgh-i317"}, Board: []string{"t0lteatt", "sgh-i317"}, Set: "t0lteatt"},
	{Family: "Samsung Galaxy Note 2 T-Mobile", Device: []string{"sgh-t889"}, Board: []string{"t0ltetmo", "sgh-t889"}, Set: "t0ltetmo"},
	{Family: "Samsung Galaxy Note 2 Canada", Board: []string{"t0ltecan"}, Set: "t0ltecan"},
	{
		Family: "Samsung Galaxy S3 International",
		Device: []string{"gt-i9300", "galaxy s3", "galaxys3", "m0", "i9300"},
		Board:  []string{"gt-i9300", "m0", "i9300"},
		Set:    "i9300",
	},
	{
		Family: "Samsung Galaxy S2",
		Device: []string{"gt-i9100g", "gt-i9100m", "gt-i9100p", "gt-i9100", "galaxys2"},
		Board:  []string{"gt-i9100g", "gt-i9100m", "gt-i9100p", "gt-i9100", "galaxys2"},
		Set:    "galaxys2",
	},
	{Family: "Samsung Galaxy S2 AT&T", Device: []string{"sgh-i777"}, Board: []string{"sgh-i777", "galaxys2att"}, Set: "galaxys2att"},
	{Family: "Samsung Galaxy S2 LTE", Device: []string{"sgh-i727"}, Board: []string{"skyrocket", "sgh-i727"}, Set: "skyrocket"},
	{Family: "Samsung Galaxy S3 International (m3)", Manufacturer: "samsung", Device: []string{"m3"}, Set: "i9300"},
	{
		Family: "Samsung Galaxy S",
		Device: []string{"galaxys", "galaxysmtd", "gt-i9000", "gt-i9000m", "gt-i9000t", "sph-d710", "sph-d710bst"},
		Board:  []string{"galaxys", "galaxysmtd", "gt-i9000", "gt-i9000m", "gt-i9000t"},
		Model:  []string{"gt-i9000t", "sph-d710bst"},
		Set:    "galaxys",
	},
	{Family: "Samsung Galaxy Note (Brazil)", Device: []string{"gt-n7000b"}, Set: "n7000"},
	{Family: "Samsung Captivate", Device: []string{"sgh-i897"}, Set: "captivate"},
	{Family: "Google Nexus 4 (gee)", Board: []string{"gee"}, Set: "geeb"},
	// The Xperia Z ext rule must precede the yuga rename, otherwise c6603 never sees it.
	{Family: "Sony Xperia Z (recovery.tar)", Device: []string{"c6603", "c6602"}, RecoveryExt: ".tar"},
	{Family: "Sony Xperia Z", Device: []string{"c6603"}, Set: "yuga"},
	{Family: "HTC Desire HD", Board: []string{"ace"}, Set: "ace"},
	{Family: "Motorola Droid X", Device: []string{"cdma_shadow"}, Board: []string{"shadow"}, Model: []string{"droidx"}, Set: "shadow"},
	{Family: "LG Optimus L9", Device: []string{"u2"}, Board: []string{"u2"}, Model: []string{"lg-p760"}, Set: "p760"},
	{Family: "LG Optimus L5", Device: []string{"m4"}, Model: []string{"lg-e610"}, Set: "e610"},
	{Family: "Huawei U9508", Device: []string{"hwu9508"}, Board: []string{"u9508"}, Set: "u9508"},
	{Family: "Huawei Ascend P1", Device: []string{"hwu9200"}, Board: []string{"u9200"}, Model: []string{"u9200"}, Set: "u9200"},
	{Family: "Motorola RAZR", Device: []string{"cdma_yangtze"}, Board: []string{"yangtze"}, Set: "yangtze"},
	{Family: "Motorola Droid RAZR", Device: []string{"cdma_spyder"}, Board: []string{"spyder"}, Set: "spyder"},
	{Family: "Huawei M835", Device: []string{"hwm835"}, Board: []string{"m835"}, Set: "m835"},
	{Family: "LG Optimus Black", Device: []string{"bproj_cis-xxx"}, Board: []string{"bproj"}, Model: []string{"lg-p970"}, Set: "p970"},
	{Family: "LG Optimus 2X (star)", Device: []string{"star"}, Set: "p990"},
}

// OverlayFamily lists devices whose recovery can only be replaced by running
// an installer package from inside the current recovery.
var OverlayFamily = map[string]bool{
	"droid2":    true,
	"daytona":   true,
	"captivate": true,
	"galaxys":   true,
	"droid2we":  true,
}

// RepackagedFamily lists devices that carry their recovery inside a vendor
// archive instead of a partition.
var RepackagedFamily = map[string]bool{
	"c6602": true,
	"yuga":  true,
}

// VendorUtilsFamily lists devices that need the vendor helper bundle before
// a recovery can be installed.
var VendorUtilsFamily = map[string]bool{
	"montblanc": true,
	"c6602":     true,
	"yuga":      true,
}
