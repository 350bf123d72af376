package partition

// RecoveryPaths are device nodes that held the recovery partition on some
// device. They are probed in order and the first existing one wins. Some are
// prefixes of others or coexist on the same device, so keep the order.
var RecoveryPaths = []string{
	"/dev/block/platform/omap/omap_hsmmc.0/by-name/recovery",
	"/dev/block/platform/omap/omap_hsmmc.1/by-name/recovery",
	"/dev/block/platform/sdhci-tegra.3/by-name/recovery",
	"/dev/block/platform/sdhci-pxav3.2/by-name/RECOVERY",
	"/dev/block/platform/comip-mmc.1/by-name/recovery",
	"/dev/block/platform/msm_sdcc.1/by-name/FOTAKernel",
	"/dev/block/platform/msm_sdcc.1/by-name/recovery",
	"/dev/block/platform/sprd-sdhci.3/by-name/KERNEL",
	"/dev/block/platform/sdhci-tegra.3/by-name/SOS",
	"/dev/block/platform/sdhci-tegra.3/by-name/USP",
	"/dev/block/platform/dw_mmc.0/by-name/recovery",
	"/dev/block/platform/dw_mmc.0/by-name/RECOVERY",
	"/dev/block/platform/hi_mci.1/by-name/recovery",
	"/dev/block/platform/sdhci-tegra.3/by-name/UP",
	"/dev/block/platform/sdhci-tegra.3/by-name/SS",
	"/dev/block/platform/sdhci.1/by-name/RECOVERY",
	"/dev/block/platform/sdhci.1/by-name/recovery",
	"/dev/block/platform/dw_mmc/by-name/recovery",
	"/dev/block/platform/dw_mmc/by-name/RECOVERY",
	"/dev/block/recovery",
	"/dev/block/nandg",
	"/dev/block/acta",
	"/dev/recovery",
}

// KernelPaths are the boot partition counterparts of RecoveryPaths
var KernelPaths = []string{
	"/dev/block/platform/omap/omap_hsmmc.0/by-name/boot",
	"/dev/block/platform/sprd-sdhci.3/by-name/KERNEL",
	"/dev/block/platform/sdhci-tegra.3/by-name/LNX",
	"/dev/block/platform/msm_sdcc.1/by-name/Kernel",
	"/dev/block/platform/msm_sdcc.1/by-name/boot",
	"/dev/block/nandc",
	"/dev/boot",
}

// MTDMountPoint exists on devices exposing raw flash through MTD
const MTDMountPoint = "/dev/mtd/"

// canonicalGroup is a set of devices sharing the same recovery node
type canonicalGroup struct {
	Path    string
	Devices []string
}

// canonicalRecoveryGroups lists recovery nodes by canonical device id,
// grouped by shared layout.
var canonicalRecoveryGroups = []canonicalGroup{
	// ASUS and alike
	{"/dev/block/mmcblk0p15", []string{"a66", "c5133", "c5170", "raybst"}},
	// Samsung and alike
	{"/dev/block/mmcblk0p18", []string{
		"d2att", "d2tmo", "d2mtr", "d2vzw", "d2spr", "d2usc", "d2can", "d2cri", "d2vmu",
		"sch-i929", "e6710", "expresslte", "goghcri", "p710", "im-a810s", "hmh", "ef65l",
		"pantechp9070",
	}},
	{"/dev/block/mmcblk0p6", []string{
		"i9300", "galaxys2", "n8013", "p3113", "p3110", "p6200", "n8000", "sph-d710vmub",
		"p920", "konawifi", "t03gctc", "cosmopolitan", "s2vep", "gt-p6810", "baffin",
		"ivoryss", "crater", "kyletdcmcc",
	}},
	{"/dev/block/mmcblk0p9", []string{
		"t03g", "tf700t", "t0lte", "t0lteatt", "t0ltecan", "t0ltektt", "t0lteskt",
		"t0ltespr", "t0lteusc", "t0ltevzw", "t0ltetmo", "m3", "otter2", "p4notelte",
	}},
	{"/dev/block/mmcblk0p21", []string{
		"golden", "villec2", "vivo", "vivow", "kingdom", "vision", "mystul", "jflteatt",
		"jfltespi", "jfltecan", "jfltecri", "jfltexx", "jfltespr", "jfltetmo", "jflteusc",
		"jfltevzw", "i9500", "flyer", "saga", "shooteru", "golfu", "glacier", "runnymede",
		"protou", "codinametropcs", "codinatmo", "skomer", "magnids",
	}},
	{"/dev/block/mmcblk0p12", []string{"jena", "kylessopen", "kyleopen"}},
	{"/dev/block/mmcblk0p8", []string{"gt-i9103", "mevlana"}},
	// LG and alike
	{"/dev/block/mmcblk0p17", []string{"e610", "fx3", "hws7300u", "vee3e", "victor", "ef34k", "aviva"}},
	{"/dev/block/mmcblk0p19", []string{"vs930", "l0", "ca201l", "ef49k", "ot-930", "fx1", "ef47s", "ef46l", "l1v"}},
	// HTC and alike
	{"/dev/block/mmcblk0p38", []string{"t6wl"}},
	{"/dev/block/mmcblk0p23", []string{"holiday", "vigor", "a68"}},
	{"/dev/block/mmcblk0p34", []string{"m7", "obakem", "obake", "ovation"}},
	{"/dev/block/mmcblk0p36", []string{"m7wls"}},
	{"/dev/block/mmcblk0p5", []string{"endeavoru", "enrc2b", "p999", "us9230e1", "evitareul", "otter", "e2001_v89_gq2008s"}},
	{"/dev/block/platform/msm_sdcc.2/mmcblk0p21", []string{"ace", "primou"}},
	{"/dev/block/platform/msm_sdcc.1/mmcblk0p21", []string{"pyramid"}},
	{"/dev/block/mmcblk0p22", []string{"ville", "evita", "skyrocket", "fireball", "jewel", "shooter"}},
	{"/dev/block/mmcblk0p20", []string{"dlxub1", "dlx", "dlxj", "im-a840sp", "im-a840s", "taurus"}},
	// Motorola and alike
	{"/dev/block/mmcblk0p32", []string{"qinara", "f02e", "vanquish_u", "xt897", "solstice", "smq_u"}},
	{"/dev/block/mmcblk1p12", []string{"pasteur"}},
	{"/dev/block/mmcblk1p14", []string{"dinara_td"}},
	{"/dev/block/mmcblk0p28", []string{"e975", "e988"}},
	{"/dev/block/mmcblk1p16", []string{"shadow", "edison", "venus2"}},
	{"/dev/block/mmcblk1p15", []string{"spyder", "maserati"}},
	{"/dev/block/mmcblk0p10", []string{"olympus", "ja3g", "ja3gchnduos", "daytona", "konalteatt", "lc1810", "lt02wifi", "lt013g"}},
	// Sony and alike
	{"/dev/block/mmcblk0p3", []string{"nozomi"}},
	{"/system/bin/recovery.tar", []string{"c6603", "c6602"}},
	// LG and alike
	{"/dev/block/mmcblk0p7", []string{"p990", "tf300t"}},
	{"/dev/block/mmcblk0p1", []string{"x3", "picasso", "picasso_m", "enterprise_ru"}},
	{"/dev/block/mmcblk0p14", []string{"m3s", "bryce", "melius3g", "meliuslte", "serranolte"}},
	{"/dev/block/mmcblk0p4", []string{"p970", "u2", "p760", "p768"}},
	// ZTE and alike
	{"/dev/block/mmcblk0p13", []string{
		"warp2", "hwc8813", "galaxysplus", "cayman", "ancora_tmo", "c8812e", "batman_skt",
		"u8833", "i_vzw", "armani_row", "hwu8825-1", "ad685g", "audi", "a111", "ancora",
		"arubaslim",
	}},
	{"/dev/block/mmcblk0p16", []string{"elden", "hayes", "quantum", "coeus", "c_4"}},
}

// CanonicalRecoveryPaths maps canonical device ids to their recovery node
var CanonicalRecoveryPaths = flattenGroups(canonicalRecoveryGroups)

// flattenGroups builds the lookup map. Later groups override earlier ones.
func flattenGroups(groups []canonicalGroup) map[string]string {
	m := make(map[string]string)
	for _, g := range groups {
		for _, dev := range g.Devices {
			m[dev] = g.Path
		}
	}
	return m
}
